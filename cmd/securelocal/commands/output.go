package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"securelocal/internal/domain"
)

const (
	formatJSON = "json"
	formatText = "text"
	formatYAML = "yaml"
)

var validFormats = []string{formatJSON, formatText, formatYAML}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// printer renders command results in the selected format.
type printer struct {
	format string
	w      io.Writer
}

// Document prints a section document. Text output is one key=value line per
// key, sorted, with non-string values in compact JSON.
func (p *printer) Document(doc domain.Document) error {
	if doc == nil {
		doc = domain.Document{}
	}
	switch p.format {
	case formatYAML:
		return p.yaml(map[string]any(doc))
	case formatText:
		keys := make([]string, 0, len(doc))
		for k := range doc {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, err := textValue(doc[k])
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(p.w, "%s=%s\n", k, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return p.json(doc)
	}
}

// List prints names, one per line in text output.
func (p *printer) List(names []string) error {
	if names == nil {
		names = []string{}
	}
	switch p.format {
	case formatYAML:
		return p.yaml(names)
	case formatText:
		for _, n := range names {
			if _, err := fmt.Fprintln(p.w, n); err != nil {
				return err
			}
		}
		return nil
	default:
		return p.json(names)
	}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func textValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
