// Package rules holds the built-in checks and the registry that orders
// them.
package rules

import (
	"pyvet/internal/diag"
	"pyvet/internal/pyast"
)

// File is the unit of analysis handed to every rule. Tree is nil when the
// source failed to parse; rules that read the tree treat a nil tree as
// nothing to check.
type File struct {
	Path   string
	Source []byte
	Tree   *pyast.Tree
}

// Meta identifies a rule in reports. ID, Category and Severity are part
// of the report format and stay fixed across releases; Summary is display
// text for the rules listing and never reaches the report.
type Meta struct {
	ID       string
	Category string
	Severity diag.Severity
	Summary  string
}

// Rule is one check. Check returns one diagnostic per violation site, in
// source order, and must not retain the file or its tree.
type Rule interface {
	Meta() Meta
	Check(f *File) []diag.Diagnostic
}

func report(m Meta, f *File, line int, message string) diag.Diagnostic {
	return diag.Diagnostic{
		File:     f.Path,
		RuleID:   m.ID,
		Category: m.Category,
		Severity: m.Severity,
		Message:  message,
		Line:     line,
	}
}
