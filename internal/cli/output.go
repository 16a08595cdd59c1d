package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/tradieone/internal/domain"

	"gopkg.in/yaml.v3"
)

// encode writes v as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlSafe(v)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// yamlSafe turns json.Number leaves into plain numbers or strings so the
// YAML encoder does not print them as tagged strings.
func yamlSafe(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case domain.Record:
		return yamlSafe(map[string]any(t))
	case []domain.Record:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = yamlSafe(r)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = yamlSafe(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = yamlSafe(val)
		}
		return out
	}
	return v
}
