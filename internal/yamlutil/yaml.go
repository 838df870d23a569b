// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Pair is one key/value of a YAML mapping decoded by UnmarshalOrdered.
// Nested mappings are []Pair as well, sequences are []any.
type Pair struct {
	Key   string
	Value any
}

func checkSize(data []byte) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

func validateInput(data []byte, v any) error {
	if err := checkSize(data); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalOrdered decodes an untyped YAML (or JSON) document keeping the
// order of mapping keys. Mappings become []Pair with scalar keys rendered
// as strings; sequences become []any; scalars keep their decoded type.
func UnmarshalOrdered(data []byte) (any, error) {
	if err := checkSize(data); err != nil {
		return nil, err
	}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return toOrdered(v), nil
}

func toOrdered(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		pairs := make([]Pair, 0, len(t))
		for _, item := range t {
			pairs = append(pairs, Pair{Key: fmt.Sprint(item.Key), Value: toOrdered(item.Value)})
		}
		return pairs
	case map[string]any:
		// Only reached when the decoder ignores ordering for nested values.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, 0, len(t))
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k, Value: toOrdered(t[k])})
		}
		return pairs
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toOrdered(item)
		}
		return out
	default:
		return v
	}
}
