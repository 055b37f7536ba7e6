package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decoder turns a config file body into raw key/value pairs.
type Decoder interface {
	Decode(r io.Reader) (map[string]any, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (map[string]any, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) (map[string]any, error) {
	return f(r)
}

func decodeJSON(r io.Reader) (map[string]any, error) {
	raw := map[string]any{}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, err
	}
	return raw, nil
}

func decodeYAML(r io.Reader) (map[string]any, error) {
	raw := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, err
	}
	return raw, nil
}

func decodeTOML(r io.Reader) (map[string]any, error) {
	raw := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// DefaultDecoders returns the registry used when no WithDecoder option is given.
func DefaultDecoders() map[string]Decoder {
	return map[string]Decoder{
		".json": DecoderFunc(decodeJSON),
		".yml":  DecoderFunc(decodeYAML),
		".yaml": DecoderFunc(decodeYAML),
		".toml": DecoderFunc(decodeTOML),
	}
}

func decoderFor(registry map[string]Decoder, path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return dec, nil
}

// flatten reduces decoded values to the flat string mapping the store keeps.
// Keys are lower-cased; nil values are dropped.
func flatten(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		str, err := scalarString(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[strings.ToLower(strings.TrimSpace(key))] = str
	}
	return out, nil
}

func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %T", value)
	}
}
