package validation

import (
	"errors"
	"fmt"
	"testing"
)

func TestFlagErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("upload: %w", Failf("No target options given"))
	if !errors.Is(err, ErrFlagValidation) {
		t.Fatalf("expected wrapped FlagError to match ErrFlagValidation")
	}
	var flagErr *FlagError
	if !errors.As(err, &flagErr) {
		t.Fatalf("expected errors.As to find FlagError")
	}
	if flagErr.Message != "No target options given" {
		t.Fatalf("unexpected message %q", flagErr.Message)
	}
	if errors.Is(errors.New("other"), ErrFlagValidation) {
		t.Fatal("unrelated error matched ErrFlagValidation")
	}
}
