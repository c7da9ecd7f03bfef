package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node kinds of the Python grammar that the rules inspect.
const (
	KindFunctionDef = "function_definition"
	KindIf          = "if_statement"
	KindFor         = "for_statement"
	KindWhile       = "while_statement"
	KindImport      = "import_statement"
	KindImportFrom  = "import_from_statement"
)

// Line returns the 1-based line on which n starts.
func Line(n *sitter.Node) int { return int(n.StartPoint().Row) + 1 }

// EndLine returns the 1-based line on which n ends.
func EndLine(n *sitter.Node) int { return int(n.EndPoint().Row) + 1 }

// Walk visits n and every named descendant in pre-order.
func Walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		Walk(n.NamedChild(i), visit)
	}
}

// FunctionInfo is the projection of a function_definition node.
type FunctionInfo struct {
	Name      string
	StartLine int
	EndLine   int
	Params    []string
}

// Span returns the line extent of the function body, def line excluded.
func (f FunctionInfo) Span() int { return f.EndLine - f.StartLine }

// Function projects a function_definition node. Declared parameter names
// include positional, keyword-only and defaulted parameters; *args and
// **kwargs splats and the bare separators are not declared names.
func Function(n *sitter.Node, src []byte) FunctionInfo {
	info := FunctionInfo{StartLine: Line(n), EndLine: EndLine(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		info.Name = name.Content(src)
	}
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return info
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if name := paramName(params.NamedChild(i), src); name != "" {
			info.Params = append(info.Params, name)
		}
	}
	return info
}

func paramName(p *sitter.Node, src []byte) string {
	switch p.Type() {
	case "identifier":
		return p.Content(src)
	case "default_parameter", "typed_default_parameter":
		if name := p.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			return name.Content(src)
		}
	case "typed_parameter":
		for i := 0; i < int(p.NamedChildCount()); i++ {
			if c := p.NamedChild(i); c.Type() == "identifier" {
				return c.Content(src)
			}
		}
	}
	return ""
}

// ImportInfo is the projection of an import statement node.
type ImportInfo struct {
	// Modules holds the full dotted module paths the statement names.
	// Relative imports carry no module path and contribute nothing.
	Modules []string
	Line    int
}

// Imports projects an import_statement or import_from_statement node.
func Imports(n *sitter.Node, src []byte) ImportInfo {
	info := ImportInfo{Line: Line(n)}
	switch n.Type() {
	case KindImport:
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			switch c.Type() {
			case "dotted_name":
				info.Modules = append(info.Modules, c.Content(src))
			case "aliased_import":
				if name := c.ChildByFieldName("name"); name != nil {
					info.Modules = append(info.Modules, name.Content(src))
				}
			}
		}
	case KindImportFrom:
		if mod := n.ChildByFieldName("module_name"); mod != nil && mod.Type() == "dotted_name" {
			info.Modules = append(info.Modules, mod.Content(src))
		}
	}
	return info
}
