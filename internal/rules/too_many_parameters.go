package rules

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"pyvet/internal/diag"
	"pyvet/internal/pyast"
)

// maxParams is the largest declared parameter count the signature check
// tolerates. self and cls count like any other name; *args and **kwargs
// splats do not.
const maxParams = 5

// TooManyParameters flags functions declaring more than maxParams
// parameters.
type TooManyParameters struct{}

func (TooManyParameters) Meta() Meta {
	return Meta{
		ID:       "MAINT_002",
		Category: "Maintainability",
		Severity: diag.SeverityMedium,
		Summary:  "Function declares more than 5 parameters",
	}
}

func (r TooManyParameters) Check(f *File) []diag.Diagnostic {
	if f.Tree == nil {
		return nil
	}
	var out []diag.Diagnostic
	pyast.Walk(f.Tree.Root(), func(n *sitter.Node) {
		if n.Type() != pyast.KindFunctionDef {
			return
		}
		fn := pyast.Function(n, f.Source)
		if len(fn.Params) > maxParams {
			msg := fmt.Sprintf("Function '%s' has too many parameters (%d)", fn.Name, len(fn.Params))
			out = append(out, report(r.Meta(), f, fn.StartLine, msg))
		}
	})
	return out
}
