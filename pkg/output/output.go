// Package output renders assembled documents for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fincast/assumptions/pkg/constants"
)

// JSONFormat writes payload as indented JSON.
func JSONFormat(w io.Writer, payload interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON output, %w", err)
	}
	return nil
}

// YAMLFormat writes payload as YAML.
func YAMLFormat(w io.Writer, payload interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode YAML output, %w", err)
	}
	return nil
}

// Write renders payload in the named format.
func Write(w io.Writer, format string, payload interface{}) error {
	switch format {
	case constants.OutputFormatJSON:
		return JSONFormat(w, payload)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, payload)
	default:
		return fmt.Errorf("unsupported output format %s", format)
	}
}
