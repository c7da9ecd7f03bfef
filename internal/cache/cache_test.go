package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyvet/internal/diag"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	return c
}

func TestKey(t *testing.T) {
	c := openTestCache(t)

	k1 := c.Key([]byte("import imp\n"))
	k2 := c.Key([]byte("import imp\n"))
	k3 := c.Key([]byte("import importlib\n"))

	assert.Equal(t, k1, k2, "same content, same key")
	assert.NotEqual(t, k1, k3, "different content, different key")
	assert.Len(t, k1, 64)
}

func TestPutGet_RebindsPath(t *testing.T) {
	c := openTestCache(t)
	key := c.Key([]byte("import imp\n"))

	c.Put(key, []diag.Diagnostic{{
		File:     "original/a.py",
		RuleID:   "DEPR_001",
		Category: "Deprecated",
		Severity: diag.SeverityHigh,
		Message:  "Deprecated module 'imp' used",
		Line:     1,
	}})

	got, ok := c.Get(key, "elsewhere/b.py")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "elsewhere/b.py", got[0].File, "entries are content-addressed, not path-bound")
	assert.Equal(t, "DEPR_001", got[0].RuleID)
	assert.Equal(t, diag.SeverityHigh, got[0].Severity)
	assert.Equal(t, 1, got[0].Line)
}

func TestGet_MissOnAbsentKey(t *testing.T) {
	c := openTestCache(t)
	_, ok := c.Get(c.Key([]byte("never stored")), "a.py")
	assert.False(t, ok)
}

func TestGet_EmptyFindingsIsStillAHit(t *testing.T) {
	c := openTestCache(t)
	key := c.Key([]byte("x = 1\n"))

	c.Put(key, nil)

	got, ok := c.Get(key, "a.py")
	assert.True(t, ok, "a clean file is a cacheable result")
	assert.Empty(t, got)
}

func TestGet_MissOnCorruptEntry(t *testing.T) {
	c := openTestCache(t)
	key := c.Key([]byte("x = 1\n"))
	c.Put(key, nil)

	require.NoError(t, os.WriteFile(c.entryPath(key), []byte("not msgpack"), 0o644))

	_, ok := c.Get(key, "a.py")
	assert.False(t, ok)
}
