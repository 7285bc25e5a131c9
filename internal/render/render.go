package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format names an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// maxExactInt is the largest magnitude below which every integer is exact
// in a float64.
const maxExactInt = 1 << 53

// ErrUnknownFormat is returned for a format other than json, yaml or toml.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{JSON, YAML, TOML}
}

// ParseFormat accepts a case-insensitive format name; "yml" is an alias.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML, TOML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Encode writes v to w in the given format.
//
// v is first passed through JSON so every format sees the same field names
// as the HTTP API. TOML needs a table at the top level, so any other value is
// written under a "value" key.
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case JSON:
		data, err := sonic.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err

	case YAML:
		generic, err := normalize(v)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(generic)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err

	case TOML:
		generic, err := normalize(v)
		if err != nil {
			return err
		}
		table, ok := generic.(map[string]interface{})
		if !ok {
			table = map[string]interface{}{"value": generic}
		}
		data, err := toml.Marshal(table)
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// normalize converts v into maps, slices and scalars. Nulls are dropped
// from maps since TOML has no null, and integral floats become integers so
// counts print as 5 rather than 5.0.
func normalize(v interface{}) (interface{}, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	var generic interface{}
	if err := sonic.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return simplify(generic), nil
}

func simplify(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if val == nil {
				delete(t, k)
				continue
			}
			t[k] = simplify(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = simplify(val)
		}
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) <= maxExactInt {
			return int64(t)
		}
		return t
	default:
		return v
	}
}
