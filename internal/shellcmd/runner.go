package shellcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes a composed shell script and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, script string) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, script string) error

// Run calls f(ctx, script).
func (f RunnerFunc) Run(ctx context.Context, script string) error {
	return f(ctx, script)
}

// ShellRunner runs scripts with `sh -c`, inheriting the given output streams.
type ShellRunner struct {
	Shell  string
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner returns a runner that writes to the process stdout/stderr.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{Shell: "/bin/sh", Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes script and reports a non-zero exit as an error.
func (r *ShellRunner) Run(ctx context.Context, script string) error {
	shell := strings.TrimSpace(r.Shell)
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", script) //nolint:gosec
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("script exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}
