package testsupport

import (
	"context"
)

// RecordingRunner captures scripts instead of executing them.
type RecordingRunner struct {
	Scripts []string
	Err     error
}

// Run records script and returns r.Err.
func (r *RecordingRunner) Run(_ context.Context, script string) error {
	r.Scripts = append(r.Scripts, script)
	return r.Err
}
