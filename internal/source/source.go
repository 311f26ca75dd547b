// Package source reads the additional data returned with a payment request
// and flattens it into the string map params.FromImport expects.
//
// A document is either the flat additional-data object itself or a payment
// response that carries it under "additionalData". JSON, YAML and TOML are
// accepted; the format is picked from the file extension.
//
// In TOML a bare dotted key such as threeds2.publicKey = "..." declares
// nested tables. Nested TOML tables are joined back into dotted keys, so
// bare and quoted keys import the same way.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of an additional-data document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Stdin is the path that makes Load read JSON from standard input.
const Stdin = "-"

// AdditionalDataKey is the field of a payment response holding the
// additional data.
const AdditionalDataKey = "additionalData"

// ErrUnknownFormat is returned when a file extension maps to no Format.
var ErrUnknownFormat = errors.New("unknown additional data format")

// Result is a flattened additional-data document.
type Result struct {
	// Data holds every entry with a scalar value, stringified.
	Data map[string]string
	// Skipped lists, sorted, the keys whose values were null, objects or arrays.
	Skipped []string
}

// FormatFor returns the Format for path based on its extension.
func FormatFor(path string) (Format, error) {
	if path == Stdin {
		return FormatJSON, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads and parses the document at path. The path "-" reads JSON
// from stdin.
func Load(path string, stdin io.Reader) (Result, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Result{}, err
	}

	var data []byte
	if path == Stdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Result{}, fmt.Errorf("reading additional data %s: %w", path, err)
	}

	res, err := Parse(data, format)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Parse decodes data in the given format and flattens it.
// An empty document yields an empty Result.
func Parse(data []byte, format Format) (Result, error) {
	raw := make(map[string]any)
	if len(strings.TrimSpace(string(data))) > 0 {
		var err error
		switch format {
		case FormatJSON:
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.UseNumber()
			err = dec.Decode(&raw)
			if err == nil && dec.More() {
				err = errors.New("unexpected data after top-level object")
			}
		case FormatYAML:
			err = yaml.Unmarshal(data, &raw)
		case FormatTOML:
			err = toml.Unmarshal(data, &raw)
		default:
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
		}
		if err != nil {
			return Result{}, fmt.Errorf("parsing %s additional data: %w", format, err)
		}
	}

	if nested, ok := raw[AdditionalDataKey].(map[string]any); ok {
		raw = nested
	}
	return flatten(raw, format == FormatTOML), nil
}

// flatten keeps scalar values, stringified, and records every other key
// as skipped. With joinTables set, nested tables are walked and their
// entries stored under dotted keys.
func flatten(raw map[string]any, joinTables bool) Result {
	res := Result{Data: make(map[string]string, len(raw))}
	flattenInto(&res, "", raw, joinTables)
	sort.Strings(res.Skipped)
	return res
}

func flattenInto(res *Result, prefix string, raw map[string]any, joinTables bool) {
	for k, v := range raw {
		key := prefix + k
		if table, ok := v.(map[string]any); ok && joinTables {
			flattenInto(res, key+".", table, joinTables)
			continue
		}
		s, ok := scalarString(v)
		if !ok {
			res.Skipped = append(res.Skipped, key)
			continue
		}
		res.Data[key] = s
	}
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	}
	return "", false
}
