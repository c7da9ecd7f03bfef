package rules

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"pyvet/internal/diag"
	"pyvet/internal/pyast"
)

// deprecatedModules is the denylist of modules flagged on import. Matches
// are exact, so importing a submodule of a listed module does not match.
var deprecatedModules = map[string]bool{
	"imp":      true,
	"optparse": true,
}

// DeprecatedImport flags imports of denylisted modules, once per offending
// module name. Relative imports carry no module path and never match.
type DeprecatedImport struct{}

func (DeprecatedImport) Meta() Meta {
	return Meta{
		ID:       "DEPR_001",
		Category: "Deprecated",
		Severity: diag.SeverityHigh,
		Summary:  "Imports a deprecated module",
	}
}

func (r DeprecatedImport) Check(f *File) []diag.Diagnostic {
	if f.Tree == nil {
		return nil
	}
	var out []diag.Diagnostic
	pyast.Walk(f.Tree.Root(), func(n *sitter.Node) {
		kind := n.Type()
		if kind != pyast.KindImport && kind != pyast.KindImportFrom {
			return
		}
		imp := pyast.Imports(n, f.Source)
		for _, mod := range imp.Modules {
			if deprecatedModules[mod] {
				msg := fmt.Sprintf("Deprecated module '%s' used", mod)
				out = append(out, report(r.Meta(), f, imp.Line, msg))
			}
		}
	})
	return out
}
