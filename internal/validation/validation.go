// Package validation defines the error returned when command flags are
// combined in a way the command does not accept.
package validation

import (
	"errors"
	"fmt"
)

// ErrFlagValidation matches every *FlagError through errors.Is.
var ErrFlagValidation = errors.New("invalid flag combination")

// FlagError carries the user-facing explanation of a rejected flag set.
type FlagError struct {
	Message string
}

func (e *FlagError) Error() string {
	return e.Message
}

// Is reports whether target is ErrFlagValidation.
func (e *FlagError) Is(target error) bool {
	return target == ErrFlagValidation
}

// Failf builds a FlagError from a format string.
func Failf(format string, args ...any) error {
	return &FlagError{Message: fmt.Sprintf(format, args...)}
}
