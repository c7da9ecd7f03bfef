// Package git scopes scans to changed files by shelling out to the local
// git binary.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ChangedFiles returns absolute paths of tracked files whose working tree
// state differs from baseRef. Deleted files are left out since there is
// nothing on disk to analyze.
func ChangedFiles(dir, baseRef string) ([]string, error) {
	top, err := run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	root := strings.TrimSpace(string(top))

	out, err := run(dir, "diff", "--name-only", "--diff-filter=d", baseRef)
	if err != nil {
		return nil, err
	}

	// Diff output is relative to the repository root, not dir
	var paths []string
	for _, rel := range parseNameOnly(out) {
		paths = append(paths, filepath.Join(root, rel))
	}
	return paths, nil
}

// parseNameOnly splits git's --name-only output into clean relative paths.
func parseNameOnly(out []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

func run(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(bytes.TrimSpace(exitErr.Stderr)) > 0 {
			return nil, fmt.Errorf("git %s: %s", args[0], bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}
