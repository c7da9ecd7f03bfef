package pyast

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *Tree {
	t.Helper()
	tree, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestParse_Valid(t *testing.T) {
	tree := parse(t, "x = 1\n")
	assert.Equal(t, "module", tree.Root().Type())
	assert.Equal(t, []byte("x = 1\n"), tree.Source())
}

func TestParse_EmptySource(t *testing.T) {
	tree := parse(t, "")
	assert.Equal(t, "module", tree.Root().Type())
	assert.Zero(t, tree.Root().NamedChildCount())
}

func TestParse_SyntaxError(t *testing.T) {
	tree, err := Parse(context.Background(), []byte("def broken(:\n    pass\n"))
	require.Error(t, err)
	assert.Nil(t, tree, "no partial tree on malformed source")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "syntax error")
}

func TestWalk_PreOrder(t *testing.T) {
	tree := parse(t, "def outer():\n    def inner():\n        pass\n")

	var names []string
	Walk(tree.Root(), func(n *sitter.Node) {
		if n.Type() == KindFunctionDef {
			names = append(names, Function(n, tree.Source()).Name)
		}
	})
	assert.Equal(t, []string{"outer", "inner"}, names)
}

func TestLines(t *testing.T) {
	tree := parse(t, "x = 1\ndef f():\n    pass\n")

	var fn *sitter.Node
	Walk(tree.Root(), func(n *sitter.Node) {
		if n.Type() == KindFunctionDef {
			fn = n
		}
	})
	require.NotNil(t, fn)
	assert.Equal(t, 2, Line(fn))
	assert.Equal(t, 3, EndLine(fn))
}
