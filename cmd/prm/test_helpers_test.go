package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"prm/internal/testsupport"
)

func runCLI(t *testing.T, args []string, opts ...contextOption) (string, string, error) {
	t.Helper()
	return runWithContext(t, newCommandContext(opts...), args...)
}

func runWithContext(t *testing.T, ctx *commandContext, args ...string) (string, string, error) {
	t.Helper()
	cmd := buildRootCommand(ctx)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// configuredHome writes a complete config file into a fresh HOME.
func configuredHome(t *testing.T, overrides map[string]string) string {
	t.Helper()
	values := map[string]string{
		"rclone_remote":          "gdrive",
		"local_files_path":       "/srv/local",
		"download_complete_path": "/srv/downloads/complete",
		"plex_media_server_path": "/srv/plex",
	}
	for k, v := range overrides {
		if v == "" {
			delete(values, k)
			continue
		}
		values[k] = v
	}
	return testsupport.NewHome(t, testsupport.WithConfigFile("toml", values))
}

type stubRemotes struct {
	remotes []string
	err     error
}

func (s stubRemotes) ListRemotes(context.Context) ([]string, error) {
	return s.remotes, s.err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireRunCount(t *testing.T, runner *testsupport.RecordingRunner, want int) {
	t.Helper()
	if got := len(runner.Scripts); got != want {
		t.Fatalf("runner called %d times, want %d", got, want)
	}
}
