// Package cache persists per-file findings keyed by source content, so
// repeated scans skip re-analyzing unchanged files.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"pyvet/internal/diag"
)

// schemaVersion is mixed into every key. Bumping it on rule or encoding
// changes makes old entries miss naturally instead of decoding stale data.
const schemaVersion = "1"

// Cache is a content-addressed store of findings on disk. Entries are
// keyed by file content, not path, so renamed or copied files still hit.
type Cache struct {
	dir string
}

// Open returns a cache rooted at dir, creating it if needed. An empty dir
// selects pyvet's directory under the user cache directory.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user cache dir: %w", err)
		}
		dir = filepath.Join(base, "pyvet")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root on disk.
func (c *Cache) Dir() string { return c.dir }

// Key derives the cache key for src.
func (c *Cache) Key(src []byte) string {
	h := sha256.New()
	h.Write([]byte("pyvet/" + schemaVersion + "\n"))
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key[:2], key[2:]+".msgpack")
}

// Get returns the stored findings for key rebound to path. Unreadable or
// undecodable entries count as misses.
func (c *Cache) Get(key, path string) ([]diag.Diagnostic, bool) {
	raw, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return nil, false
	}
	var diags []diag.Diagnostic
	if err := msgpack.Unmarshal(raw, &diags); err != nil {
		return nil, false
	}
	for i := range diags {
		diags[i].File = path
	}
	return diags, true
}

// Put stores findings under key. File paths are stripped first so entries
// stay content-addressed. Write failures are logged and swallowed, a cold
// cache must never fail a scan.
func (c *Cache) Put(key string, diags []diag.Diagnostic) {
	stored := make([]diag.Diagnostic, len(diags))
	copy(stored, diags)
	for i := range stored {
		stored[i].File = ""
	}
	raw, err := msgpack.Marshal(stored)
	if err != nil {
		slog.Warn("cache encode failed", "err", err)
		return
	}

	entry := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		slog.Warn("cache write failed", "err", err)
		return
	}
	tmp, err := os.CreateTemp(filepath.Dir(entry), ".tmp-*")
	if err != nil {
		slog.Warn("cache write failed", "err", err)
		return
	}
	_, werr := tmp.Write(raw)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		slog.Warn("cache write failed", "err", err)
		return
	}
	// Rename keeps concurrent writers of the same key safe: readers only
	// ever see complete entries.
	if err := os.Rename(tmp.Name(), entry); err != nil {
		os.Remove(tmp.Name())
		slog.Warn("cache write failed", "err", err)
	}
}
