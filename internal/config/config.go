package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed sample_config.toml
var sampleConfig string

var searchPaths = []string{
	"~/.config/prm.json",
	"~/.config/prm.yml",
	"~/.config/prm.yaml",
	"~/.config/prm.toml",
}

// Layer names where a resolved value came from.
type Layer string

const (
	LayerOverride Layer = "override"
	LayerFile     Layer = "file"
	LayerUnset    Layer = "unset"
)

// Option configures a Store.
type Option func(*Store)

// WithPath replaces the default search list with a single explicit file.
func WithPath(path string) Option {
	return func(s *Store) {
		if path = strings.TrimSpace(path); path != "" {
			s.candidates = []string{path}
		}
	}
}

// WithSearchPaths replaces the ordered candidate list.
func WithSearchPaths(paths ...string) Option {
	return func(s *Store) {
		s.candidates = append([]string(nil), paths...)
	}
}

// WithDecoder registers (or replaces) the decoder for a file extension.
func WithDecoder(ext string, dec Decoder) Option {
	return func(s *Store) {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.decoders[ext] = dec
	}
}

// WithLogger attaches a logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store merges a lazily loaded config file with per-invocation overrides.
// Lookup precedence is override, then file, then absent.
type Store struct {
	candidates []string
	decoders   map[string]Decoder
	logger     *slog.Logger

	loadOnce   sync.Once
	loadErr    error
	loadedPath string
	file       map[Key]string

	overrides map[Key]string
}

// NewStore constructs a Store. Nothing is read from disk until the first lookup
// that misses the override layer.
func NewStore(opts ...Option) *Store {
	s := &Store{
		candidates: append([]string(nil), searchPaths...),
		decoders:   DefaultDecoders(),
		logger:     slog.New(slog.DiscardHandler),
		overrides:  map[Key]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get resolves a required key.
func (s *Store) Get(key Key) (string, error) {
	value, ok, err := s.Lookup(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &MissingKeyError{Key: key}
	}
	return value, nil
}

// Lookup resolves an optional key. Empty values are reported as absent.
func (s *Store) Lookup(key Key) (string, bool, error) {
	if value, ok := s.overrides[key]; ok && value != "" {
		return value, true, nil
	}
	if err := s.ensureLoaded(); err != nil {
		return "", false, err
	}
	value, ok := s.file[key]
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Source reports which layer currently satisfies key.
func (s *Store) Source(key Key) (Layer, error) {
	if value, ok := s.overrides[key]; ok && value != "" {
		return LayerOverride, nil
	}
	if err := s.ensureLoaded(); err != nil {
		return LayerUnset, err
	}
	if value, ok := s.file[key]; ok && value != "" {
		return LayerFile, nil
	}
	return LayerUnset, nil
}

// Set stores an override and re-validates all path-typed overrides. A rejected
// value is not retained.
func (s *Store) Set(key Key, value string) error {
	previous, hadPrevious := s.overrides[key]
	s.overrides[key] = value
	if err := normalizeLayer(s.overrides); err != nil {
		if hadPrevious {
			s.overrides[key] = previous
		} else {
			delete(s.overrides, key)
		}
		return err
	}
	return nil
}

// ClearOverrides empties the override layer.
func (s *Store) ClearOverrides() {
	s.overrides = map[Key]string{}
}

// LoadedPath returns the config file backing the file layer, if any.
func (s *Store) LoadedPath() (string, bool, error) {
	if err := s.ensureLoaded(); err != nil {
		return "", false, err
	}
	return s.loadedPath, s.loadedPath != "", nil
}

// Candidates returns the expanded search list in lookup order.
func (s *Store) Candidates() ([]string, error) {
	out := make([]string, 0, len(s.candidates))
	for _, candidate := range s.candidates {
		expanded, err := expandPath(candidate)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

func (s *Store) ensureLoaded() error {
	s.loadOnce.Do(func() {
		s.loadErr = s.load()
	})
	return s.loadErr
}

func (s *Store) load() error {
	s.file = map[Key]string{}

	candidates, err := s.Candidates()
	if err != nil {
		return err
	}
	path, found, err := firstExisting(candidates)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Debug("no config file found", "candidates", strings.Join(candidates, ","))
		return nil
	}

	dec, err := decoderFor(s.decoders, path)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	raw, err := dec.Decode(file)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	values, err := flatten(raw)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	layer := make(map[Key]string, len(values))
	for name, value := range values {
		key, ok := ParseKey(name)
		if !ok {
			s.logger.Debug("ignoring unknown config key", "key", name, "path", path)
			continue
		}
		layer[key] = value
	}
	if err := normalizeLayer(layer); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	s.file = layer
	s.loadedPath = path
	s.logger.Debug("config loaded", "path", path, "keys", len(layer))
	return nil
}

func firstExisting(paths []string) (string, bool, error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			continue
		}
		return path, true, nil
	}
	return "", false, nil
}

// DefaultConfigPath returns the location `config init` writes to.
func DefaultConfigPath() (string, error) {
	return expandPath(searchPaths[len(searchPaths)-1])
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
