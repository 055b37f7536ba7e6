package main

import (
	"errors"
	"strings"
	"testing"

	"prm/internal/config"
	"prm/internal/runlock"
	"prm/internal/testsupport"
	"prm/internal/validation"
)

func TestUploadFlagValidation(t *testing.T) {
	configuredHome(t, nil)
	cases := [][]string{
		{"upload"},
		{"upload", "--all", "--media"},
		{"upload", "--all", "--plex-data"},
		{"upload", "--media", "--no-tar"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			runner := &testsupport.RecordingRunner{}
			_, _, err := runCLI(t, args, withRunner(runner))
			if !errors.Is(err, validation.ErrFlagValidation) {
				t.Fatalf("expected ErrFlagValidation, got %v", err)
			}
			requireRunCount(t, runner, 0)
		})
	}
}

func TestUploadRunsScriptOnce(t *testing.T) {
	configuredHome(t, nil)
	runner := &testsupport.RecordingRunner{}
	if _, _, err := runCLI(t, []string{"upload", "--media"}, withRunner(runner)); err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireRunCount(t, runner, 1)
	requireContains(t, runner.Scripts[0], "/srv/local gdrive: \\")

	// lock is released after the run
	if _, _, err := runCLI(t, []string{"upload", "--media"}, withRunner(runner)); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	requireRunCount(t, runner, 2)
}

func TestUploadDryRunPrintsScript(t *testing.T) {
	configuredHome(t, nil)
	runner := &testsupport.RecordingRunner{}
	out, _, err := runCLI(t, []string{"upload", "--all", "--no-tar", "--dry-run"}, withRunner(runner))
	if err != nil {
		t.Fatalf("upload --dry-run: %v", err)
	}
	requireRunCount(t, runner, 0)
	if !strings.HasPrefix(out, "set -x\n") {
		t.Fatalf("expected script on stdout, got %q", out)
	}
	if strings.Contains(out, "tar -czhf") {
		t.Fatalf("--no-tar script should not create tarballs:\n%s", out)
	}
	requireContains(t, out, "gdrive:/Backups/Plex")
}

func TestUploadFlagOverrides(t *testing.T) {
	configuredHome(t, nil)
	out, _, err := runCLI(t, []string{"upload", "--plex-data", "--dry-run", "-r", "other:", "-P", "/data/Plex Media Server"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireContains(t, out, "other:/Backups/Plex")
	requireContains(t, out, "'/data/Plex Media Server/Metadata/'")
	if strings.Contains(out, "gdrive") {
		t.Fatalf("file remote leaked past override:\n%s", out)
	}
}

func TestUploadTrailingSeparatorOverrideRejected(t *testing.T) {
	configuredHome(t, nil)
	_, _, err := runCLI(t, []string{"upload", "--plex-data", "--dry-run", "-P", "/data/plex/"})
	if !errors.Is(err, config.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestOverridesDoNotLeakBetweenInvocations(t *testing.T) {
	configuredHome(t, nil)
	runner := &testsupport.RecordingRunner{}
	ctx := newCommandContext(withRunner(runner))

	if _, _, err := runWithContext(t, ctx, "upload", "--media", "-r", "flagremote"); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if _, _, err := runWithContext(t, ctx, "upload", "--media"); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	requireRunCount(t, runner, 2)
	requireContains(t, runner.Scripts[0], "flagremote:")
	if strings.Contains(runner.Scripts[1], "flagremote") {
		t.Fatalf("override leaked into second invocation:\n%s", runner.Scripts[1])
	}
	requireContains(t, runner.Scripts[1], "gdrive:")
}

func TestUploadMissingConfig(t *testing.T) {
	testsupport.NewHome(t)
	runner := &testsupport.RecordingRunner{}
	_, _, err := runCLI(t, []string{"upload", "--media"}, withRunner(runner))
	if !errors.Is(err, config.ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	requireRunCount(t, runner, 0)
}

func TestUploadRespectsRunLock(t *testing.T) {
	configuredHome(t, nil)
	path, err := runlock.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	held, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer held.Release()

	runner := &testsupport.RecordingRunner{}
	_, _, err = runCLI(t, []string{"upload", "--media"}, withRunner(runner))
	if !errors.Is(err, runlock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	requireRunCount(t, runner, 0)
}

func TestRunnerFailurePropagates(t *testing.T) {
	configuredHome(t, nil)
	runner := &testsupport.RecordingRunner{Err: errors.New("script exited with status 3")}
	_, _, err := runCLI(t, []string{"clean", "--manual-import-partials"}, withRunner(runner))
	if err == nil || err.Error() != "clean: script exited with status 3" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCleanWithoutTargets(t *testing.T) {
	testsupport.NewHome(t)
	runner := &testsupport.RecordingRunner{}
	out, _, err := runCLI(t, []string{"clean"}, withRunner(runner))
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, out, "Nothing to clean")
	requireRunCount(t, runner, 0)
}

func TestCleanDryRun(t *testing.T) {
	configuredHome(t, nil)
	out, _, err := runCLI(t, []string{"clean", "--after-manual-import", "--dry-run"})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, out, "path=/srv/downloads/complete\n")
	requireContains(t, out, `find "${path}/Music" -type d -empty -print -delete`)
}

func TestRemoteCompletion(t *testing.T) {
	testsupport.NewHome(t)
	lister := stubRemotes{remotes: []string{"gdrive:", "gcrypt:", "s3:"}}
	out, _, err := runCLI(t, []string{"__complete", "upload", "--rclone-remote", "g"}, withRemoteLister(lister))
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	requireContains(t, out, "gdrive\n")
	requireContains(t, out, "gcrypt\n")
	if strings.Contains(out, "s3") || strings.Contains(out, "gdrive:") {
		t.Fatalf("unexpected completion output %q", out)
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := runCLI(t, []string{"--version"})
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	requireContains(t, out, "version "+version)
}

func TestInvalidLogLevel(t *testing.T) {
	testsupport.NewHome(t)
	if _, _, err := runCLI(t, []string{"--log-level", "loud", "clean"}); err == nil {
		t.Fatal("expected unsupported log level error")
	}
}

func TestDebugLogsGoToStderr(t *testing.T) {
	configuredHome(t, nil)
	out, errOut, err := runCLI(t, []string{"--log-level", "debug", "clean", "--after-manual-import", "--dry-run"})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, errOut, "correlation_id")
	if strings.Contains(out, "DEBUG") {
		t.Fatalf("logs leaked into stdout: %q", out)
	}
}
