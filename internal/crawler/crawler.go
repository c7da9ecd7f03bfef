// Package crawler discovers the Python files a scan should cover.
package crawler

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Crawler scans a directory tree for Python files.
type Crawler struct {
	ignored []string
}

// New creates a crawler. Directory names in exclude are skipped on top of
// the built-in ignore list.
func New(exclude []string) *Crawler {
	ignored := []string{".git", "__pycache__", ".venv", "venv", "node_modules"}
	return &Crawler{ignored: append(ignored, exclude...)}
}

// Discover returns the Python files under root in lexical path order. A
// root that is itself a .py file yields exactly that file.
func (c *Crawler) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}

	// A single-file root bypasses the walk entirely
	if !info.IsDir() {
		if !strings.HasSuffix(root, ".py") {
			slog.Warn("scan root is not a python file", "path", root)
			return nil, nil
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories, but never the root itself: pointing
		// the tool at one is an explicit choice
		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		// Only collect Python files
		if strings.HasSuffix(d.Name(), ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}
