package rules

import (
	"bytes"
	"fmt"

	"pyvet/internal/diag"
)

// maxFileLines is the largest raw line count a file may have before the
// organization check flags it.
const maxFileLines = 500

// LargeFile flags files whose raw line count exceeds maxFileLines. It only
// reads the source bytes, so it runs even for files that failed to parse.
type LargeFile struct{}

func (LargeFile) Meta() Meta {
	return Meta{
		ID:       "ORG_001",
		Category: "Organization",
		Severity: diag.SeverityMedium,
		Summary:  "File exceeds 500 lines",
	}
}

func (r LargeFile) Check(f *File) []diag.Diagnostic {
	n := countLines(f.Source)
	if n <= maxFileLines {
		return nil
	}
	msg := fmt.Sprintf("File too large (%d lines)", n)
	return []diag.Diagnostic{report(r.Meta(), f, 1, msg)}
}

// countLines counts lines the way a line-by-line reader would: every
// newline ends a line, and a trailing chunk without one still counts.
func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte{'\n'})
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}
