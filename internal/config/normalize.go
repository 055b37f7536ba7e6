package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// normalizePath validates a path-typed value and expands a leading tilde.
func normalizePath(key Key, value string) (string, error) {
	if value == "" {
		return value, nil
	}
	if hasTrailingSeparator(value) {
		return "", &PathError{Key: key, Value: value}
	}
	expanded, err := expandPath(value)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return expanded, nil
}

// normalizeLayer rewrites every path-typed entry of layer in place.
func normalizeLayer(layer map[Key]string) error {
	for _, key := range Keys() {
		if !key.IsPath() {
			continue
		}
		value, ok := layer[key]
		if !ok {
			continue
		}
		normalized, err := normalizePath(key, value)
		if err != nil {
			return err
		}
		layer[key] = normalized
	}
	return nil
}

func hasTrailingSeparator(value string) bool {
	if strings.HasSuffix(value, "/") {
		return true
	}
	return os.PathSeparator != '/' && strings.HasSuffix(value, string(os.PathSeparator))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" || !strings.HasPrefix(pathValue, "~") {
		return pathValue, nil
	}
	if pathValue != "~" && pathValue[1] != '/' && pathValue[1] != '\\' {
		return pathValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if pathValue == "~" {
		return home, nil
	}
	return filepath.Join(home, pathValue[2:]), nil
}

// ExpandPath exposes the tilde expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
