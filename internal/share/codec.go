package share

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// Format selects the wire syntax of a record.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes data into a generic record. JSON numbers are kept as
// json.Number so large integers are not rounded through float64.
func Parse(data []byte, format Format) (Record, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: decode json: %v", sss.ErrMalformedValue, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %v", sss.ErrMalformedValue, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %s", sss.ErrInvalidArgument, format)
	}

	m, ok := asMap(raw)
	if !ok {
		return nil, fmt.Errorf("%w: top-level %s value is %T, want an object", sss.ErrMalformedValue, format, raw)
	}
	return Record(m), nil
}

// Encode is the inverse of Parse.
func Encode(rec Record, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(rec, "", "  ")
	case FormatYAML:
		return yaml.Marshal(map[string]any(rec))
	default:
		return nil, fmt.Errorf("%w: unknown format %s", sss.ErrInvalidArgument, format)
	}
}

// Load reads the record at path and builds its PointSet.
func Load(path string) (*sss.PointSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	rec, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	set, err := FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
