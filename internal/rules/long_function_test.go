package rules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcWithBody builds a module with a single function whose body covers
// exactly bodyLines lines below the def line.
func funcWithBody(bodyLines int) string {
	var b strings.Builder
	b.WriteString("def f():\n")
	for i := 0; i < bodyLines; i++ {
		fmt.Fprintf(&b, "    x%d = %d\n", i, i)
	}
	return b.String()
}

func TestLongFunction_Boundary(t *testing.T) {
	rule := LongFunction{}

	t.Run("at the limit", func(t *testing.T) {
		f := parseFile(t, funcWithBody(50))
		assert.Empty(t, rule.Check(f))
	})

	t.Run("one line over", func(t *testing.T) {
		f := parseFile(t, funcWithBody(51))
		got := rule.Check(f)
		require.Len(t, got, 1)
		assert.Equal(t, "MAINT_001", got[0].RuleID)
		assert.Equal(t, "Function 'f' too long (51 lines)", got[0].Message)
		assert.Equal(t, 1, got[0].Line, "finding should sit on the def line")
	})
}

func TestLongFunction_NestedFunctionsReportedSeparately(t *testing.T) {
	var b strings.Builder
	b.WriteString("def outer():\n")
	b.WriteString("    def inner():\n")
	for i := 0; i < 51; i++ {
		fmt.Fprintf(&b, "        x%d = %d\n", i, i)
	}

	got := LongFunction{}.Check(parseFile(t, b.String()))
	require.Len(t, got, 2)

	// Pre-order walk reports the enclosing function first
	assert.Contains(t, got[0].Message, "'outer'")
	assert.Equal(t, 1, got[0].Line)
	assert.Contains(t, got[1].Message, "'inner'")
	assert.Equal(t, 2, got[1].Line)
	assert.Equal(t, "Function 'outer' too long (52 lines)", got[0].Message)
	assert.Equal(t, "Function 'inner' too long (51 lines)", got[1].Message)
}
