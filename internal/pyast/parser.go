// Package pyast parses Python source into tree-sitter syntax trees and
// provides the node projections the rules work with.
package pyast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseError reports that a file's source is not syntactically valid
// Python. Line is the 1-based line of the first error node.
type ParseError struct {
	Line int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("python syntax error near line %d", e.Line)
	}
	return "python syntax error"
}

// Tree is one parsed Python source file. The source bytes stay attached
// because tree-sitter nodes resolve their text against them.
type Tree struct {
	src   []byte
	inner *sitter.Tree
}

// Root returns the module node of the parse tree.
func (t *Tree) Root() *sitter.Node { return t.inner.RootNode() }

// Source returns the raw bytes the tree was parsed from.
func (t *Tree) Source() []byte { return t.src }

// Close releases the tree's native memory. The tree must not be used
// afterwards.
func (t *Tree) Close() { t.inner.Close() }

// Parse parses src as Python. Malformed source yields a *ParseError and no
// tree; a partial tree is never returned. The context bounds the parse, so
// callers may cancel pathological input.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse python source: %w", err)
	}

	// tree-sitter recovers from syntax errors instead of failing, so the
	// no-partial-tree contract is enforced here.
	root := tree.RootNode()
	if root.HasError() {
		perr := &ParseError{Line: firstErrorLine(root)}
		tree.Close()
		return nil, perr
	}
	return &Tree{src: src, inner: tree}, nil
}

func firstErrorLine(root *sitter.Node) int {
	line := 0
	Walk(root, func(n *sitter.Node) {
		if line == 0 && (n.Type() == "ERROR" || n.IsMissing()) {
			line = Line(n)
		}
	})
	return line
}
