package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyvet/internal/diag"
)

func TestEncodeJSON_LegacyShape(t *testing.T) {
	diags := []diag.Diagnostic{{
		File:     "app/models.py",
		RuleID:   "DEPR_001",
		Category: "Deprecated",
		Severity: diag.SeverityHigh,
		Message:  "Deprecated module 'imp' used",
		Line:     3,
	}}

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, diags))

	want := `[
  {
    "file": "app/models.py",
    "rule_id": "DEPR_001",
    "category": "Deprecated",
    "severity": "HIGH",
    "message": "Deprecated module 'imp' used",
    "line": 3
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeJSON_EmptyIsAnArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}
