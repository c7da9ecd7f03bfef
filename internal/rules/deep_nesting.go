package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"pyvet/internal/diag"
	"pyvet/internal/pyast"
)

// maxNestingDepth is the deepest chain of nested control statements the
// nesting check tolerates.
const maxNestingDepth = 3

// DeepNesting flags if, for and while statements nested more than
// maxNestingDepth levels deep. Every construct past the threshold is
// reported at its own line, so one deep block can yield several findings.
type DeepNesting struct{}

func (DeepNesting) Meta() Meta {
	return Meta{
		ID:       "SMELL_001",
		Category: "Code Smell",
		Severity: diag.SeverityMedium,
		Summary:  "Control flow nested more than 3 levels deep",
	}
}

func (r DeepNesting) Check(f *File) []diag.Diagnostic {
	if f.Tree == nil {
		return nil
	}
	return r.walk(f, f.Tree.Root(), 0)
}

// walk threads the depth through the recursion instead of keeping rule
// state, so a rule value stays reusable across files.
func (r DeepNesting) walk(f *File, n *sitter.Node, depth int) []diag.Diagnostic {
	var out []diag.Diagnostic
	child := depth
	switch n.Type() {
	case pyast.KindIf, pyast.KindFor, pyast.KindWhile:
		child = depth + 1
		if child > maxNestingDepth {
			out = append(out, report(r.Meta(), f, pyast.Line(n), "Deep nesting detected"))
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, r.walk(f, n.NamedChild(i), child)...)
	}
	return out
}
