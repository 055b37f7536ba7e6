package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Bundle describes one metadata bundle in a fake Plex tree.
type Bundle struct {
	Group   string
	Name    string
	Indexed bool
}

// NewPlexTree builds a Plex Media Server data directory under base containing
// the given bundles and returns its path.
func NewPlexTree(t testing.TB, base string, bundles ...Bundle) string {
	t.Helper()

	pms := filepath.Join(base, "Plex Media Server")
	root := filepath.Join(pms, "Media", "localhost")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir plex root: %v", err)
	}
	for _, b := range bundles {
		dir := filepath.Join(root, b.Group, b.Name)
		if err := os.MkdirAll(filepath.Join(dir, "Contents"), 0o755); err != nil {
			t.Fatalf("mkdir bundle %s: %v", dir, err)
		}
		if b.Indexed {
			WriteFile(t, filepath.Join(dir, "Contents", "Indexes", "index-sd.bif"), "BIF")
		}
	}
	return pms
}
