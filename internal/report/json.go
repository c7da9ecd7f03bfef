// Package report renders findings as the JSON report file and as terminal
// output.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"pyvet/internal/diag"
)

// EncodeJSON writes the findings to w as a 2-space indented JSON array.
// The array form and field names are the legacy report format consumed by
// downstream tooling.
func EncodeJSON(w io.Writer, diags []diag.Diagnostic) error {
	// A clean scan is an empty array, never null
	if diags == nil {
		diags = []diag.Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

// WriteJSON writes the findings as a JSON report at path.
func WriteJSON(path string, diags []diag.Diagnostic) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, diags); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
