package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// HomeOption customizes the fake home directory built by NewHome.
type HomeOption func(*homeBuilder)

type homeBuilder struct {
	t    testing.TB
	home string
}

// NewHome points HOME (and the XDG cache dir) at a fresh temp directory and
// applies the options. It returns the home path.
func NewHome(t testing.TB, opts ...HomeOption) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	b := &homeBuilder{t: t, home: home}
	for _, opt := range opts {
		opt(b)
	}
	return home
}

// WithConfigFile writes values to ~/.config/prm.<ext>, encoded for ext
// ("json", "yml", "yaml" or "toml").
func WithConfigFile(ext string, values map[string]string) HomeOption {
	return func(b *homeBuilder) {
		WriteConfig(b.t, filepath.Join(b.home, ".config", "prm."+ext), values)
	}
}

// WriteConfig encodes values according to the extension of path.
func WriteConfig(t testing.TB, path string, values map[string]string) {
	t.Helper()

	var body []byte
	var err error
	switch filepath.Ext(path) {
	case ".json":
		body, err = json.MarshalIndent(values, "", "  ")
	case ".yml", ".yaml":
		body, err = yaml.Marshal(values)
	case ".toml":
		body, err = toml.Marshal(values)
	default:
		t.Fatalf("unsupported config extension for %s", path)
	}
	if err != nil {
		t.Fatalf("encode config %s: %v", path, err)
	}
	WriteFile(t, path, string(body))
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the binaries prm scripts invoke
// are stubbed.
func WithStubbedBinaries(names ...string) HomeOption {
	return func(b *homeBuilder) {
		if len(names) == 0 {
			names = []string{"rclone", "tar", "find"}
		}
		binDir := filepath.Join(b.home, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// WriteFile creates path (and its parents) with the given content.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
