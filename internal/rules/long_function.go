package rules

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"pyvet/internal/diag"
	"pyvet/internal/pyast"
)

// maxFunctionLines is the largest line span a function may cover before
// the length check flags it.
const maxFunctionLines = 50

// LongFunction flags functions spanning more than maxFunctionLines lines.
// The span is the last body line minus the def line, so a def with its
// body on the same line spans zero.
type LongFunction struct{}

func (LongFunction) Meta() Meta {
	return Meta{
		ID:       "MAINT_001",
		Category: "Maintainability",
		Severity: diag.SeverityMedium,
		Summary:  "Function spans more than 50 lines",
	}
}

func (r LongFunction) Check(f *File) []diag.Diagnostic {
	if f.Tree == nil {
		return nil
	}
	var out []diag.Diagnostic
	pyast.Walk(f.Tree.Root(), func(n *sitter.Node) {
		if n.Type() != pyast.KindFunctionDef {
			return
		}
		fn := pyast.Function(n, f.Source)
		if span := fn.Span(); span > maxFunctionLines {
			msg := fmt.Sprintf("Function '%s' too long (%d lines)", fn.Name, span)
			out = append(out, report(r.Meta(), f, fn.StartLine, msg))
		}
	})
	return out
}
