package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prm/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	r := CheckDirectoryAccess("Local files", dir)
	if !r.Passed {
		t.Fatalf("expected pass, got: %s", r.Detail)
	}
	if !strings.Contains(r.Detail, "read/write ok") {
		t.Fatalf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	r := CheckDirectoryAccess("Local files", filepath.Join(t.TempDir(), "nope"))
	if r.Passed {
		t.Fatal("expected failure for nonexistent directory")
	}
	if !strings.Contains(r.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := CheckDirectoryAccess("Local files", f)
	if r.Passed {
		t.Fatal("expected failure for file path")
	}
	if !strings.Contains(r.Detail, "not a directory") {
		t.Fatalf("unexpected detail: %s", r.Detail)
	}
}

func TestIsMountPoint(t *testing.T) {
	mounted, err := IsMountPoint("/")
	if err != nil {
		t.Fatalf("IsMountPoint(/): %v", err)
	}
	if !mounted {
		t.Fatal("expected / to be a mount point")
	}

	sub := filepath.Join(t.TempDir(), "plain")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	mounted, err = IsMountPoint(sub)
	if err != nil {
		t.Fatalf("IsMountPoint(%s): %v", sub, err)
	}
	if mounted {
		t.Fatalf("expected %s not to be a mount point", sub)
	}
}

func TestCheckMountPoint_NotMounted(t *testing.T) {
	sub := filepath.Join(t.TempDir(), "mnt")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	r := CheckMountPoint("rclone mount", sub)
	if r.Passed {
		t.Fatal("expected failure for plain directory")
	}
	if !strings.Contains(r.Detail, "not a mount point") {
		t.Fatalf("unexpected detail: %s", r.Detail)
	}

	r = CheckMountPoint("rclone mount", filepath.Join(t.TempDir(), "absent"))
	if r.Passed || !strings.Contains(r.Detail, "does not exist") {
		t.Fatalf("unexpected result for absent path: %+v", r)
	}
}

func TestRunAllSkipsUnsetKeys(t *testing.T) {
	store := config.NewStore(config.WithSearchPaths())
	local := t.TempDir()
	if err := store.Set(config.LocalFilesPath, local); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(config.RcloneRemote, "gdrive"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	results := RunAll(store)
	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}
	if r := byName["rclone remote"]; !r.Passed || r.Detail != "gdrive:" {
		t.Fatalf("unexpected remote result %+v", r)
	}
	if r := byName["Local files"]; !r.Passed {
		t.Fatalf("expected local files to pass: %+v", r)
	}
	for _, name := range []string{"Download complete", "Plex Media Server", "rclone mount", "Merge mount"} {
		if r := byName[name]; !r.Skipped {
			t.Fatalf("expected %s to be skipped, got %+v", name, r)
		}
	}
	if !Passed(results) {
		t.Fatal("skipped checks should not fail the run")
	}
}

func TestRunAllReportsFailures(t *testing.T) {
	store := config.NewStore(config.WithSearchPaths())
	plain := t.TempDir()
	if err := store.Set(config.MountRclonePath, plain); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if Passed(RunAll(store)) {
		t.Fatal("expected unmounted rclone path to fail")
	}
}
