// Package records loads record collections from JSON and YAML documents.
//
// A document holds either a sequence of mappings or a single mapping, which
// loads as a one-element collection. Numbers load as float64 (JSON) or as
// the YAML decoder's int/float64, both of which templates and comparisons
// accept.
package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/elclanrs/templee/pkg/types"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", types.NewError(types.ErrUnsupportedFormat,
			fmt.Sprintf("unsupported extension %q", filepath.Ext(p))).WithSource(p)
	}
}

// LoadFile reads the records stored at p.
func LoadFile(p string) ([]types.Record, error) {
	format, err := FormatFromPath(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, types.NewError(types.ErrReadFailed, "cannot read file").WithSource(p).WithCause(err)
	}
	recs, err := Decode(data, format)
	if err != nil {
		var te *types.Error
		if errors.As(err, &te) {
			return nil, te.WithSource(p)
		}
		return nil, err
	}
	return recs, nil
}

// Load reads every byte from r and decodes it as format.
func Load(r io.Reader, format Format) ([]types.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewError(types.ErrReadFailed, "cannot read input").WithCause(err)
	}
	return Decode(data, format)
}

// Decode parses data as format.
func Decode(data []byte, format Format) ([]types.Record, error) {
	var doc interface{}
	switch format {
	case JSON:
		if err := json.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
			return nil, types.NewError(types.ErrDecodeFailed, "invalid JSON").WithCause(err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, types.NewError(types.ErrDecodeFailed, "invalid YAML").WithCause(err)
		}
		doc = normalize(doc)
	default:
		return nil, types.NewError(types.ErrUnsupportedFormat, fmt.Sprintf("unsupported format %q", format))
	}
	return toRecords(doc)
}

func toRecords(doc interface{}) ([]types.Record, error) {
	switch d := doc.(type) {
	case nil:
		return []types.Record{}, nil
	case map[string]interface{}:
		return []types.Record{d}, nil
	case []interface{}:
		out := make([]types.Record, 0, len(d))
		for i, item := range d {
			rec, ok := item.(map[string]interface{})
			if !ok {
				return nil, types.NewError(types.ErrNotARecord,
					fmt.Sprintf("element %d is %T, not a mapping", i, item))
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return nil, types.NewError(types.ErrNotARecord,
			fmt.Sprintf("document is %T, not a mapping or sequence", doc))
	}
}

// normalize rewrites the map[interface{}]interface{} values yaml.v3 produces
// for mappings with non-string keys into map[string]interface{}, recursively.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []interface{}:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}
