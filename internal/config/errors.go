package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequired reports a required key with no override and no file value.
	ErrMissingRequired = errors.New("missing required config value")
	// ErrInvalidPath reports a path-typed value ending in a path separator.
	ErrInvalidPath = errors.New("invalid path value")
	// ErrUnsupportedFormat reports a config file with no registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// MissingKeyError names the key that could not be resolved.
type MissingKeyError struct {
	Key Key
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s: %s (set it in ~/.config/prm.toml or pass it as a flag)", ErrMissingRequired, e.Key)
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingRequired
}

// PathError describes a rejected path-typed value.
type PathError struct {
	Key   Key
	Value string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s=%q must not end with a path separator", ErrInvalidPath, e.Key, e.Value)
}

func (e *PathError) Unwrap() error {
	return ErrInvalidPath
}
