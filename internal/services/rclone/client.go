// Package rclone wraps the few rclone CLI queries prm makes directly. Transfers
// themselves run inside composed shell scripts.
package rclone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args ...string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client runs rclone queries.
type Client struct {
	binary string
	exec   Executor
}

// New constructs a client for the given rclone binary.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("rclone binary required")
	}
	c := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ResolveBinary prefers the fixed path used by composed scripts and falls
// back to PATH lookup.
func ResolveBinary(preferred string) string {
	if info, err := os.Stat(preferred); err == nil && !info.IsDir() {
		return preferred
	}
	if path, err := exec.LookPath("rclone"); err == nil {
		return path
	}
	return preferred
}

// ListRemotes returns configured remote names including the trailing colon.
func (c *Client) ListRemotes(ctx context.Context) ([]string, error) {
	out, err := c.exec.Output(ctx, c.binary, "listremotes")
	if err != nil {
		return nil, fmt.Errorf("rclone listremotes: %w", err)
	}
	return parseRemotes(string(out)), nil
}

func parseRemotes(output string) []string {
	var remotes []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ":") {
			remotes = append(remotes, line)
		}
	}
	return remotes
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.Output()
}
