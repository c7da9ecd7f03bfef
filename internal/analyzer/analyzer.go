// Package analyzer runs the rule set over Python files and folds the
// findings into deterministic, report-ready slices.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"pyvet/internal/diag"
	"pyvet/internal/pyast"
	"pyvet/internal/rules"
)

// AnalyzeSource checks one file's source against ruleset and returns the
// findings in rule order. A nil ruleset means the built-in registry.
// Source that fails to parse is not an error:
// tree-backed rules see a nil tree and contribute nothing, while raw-text
// rules still report.
func AnalyzeSource(ctx context.Context, path string, src []byte, ruleset []rules.Rule) ([]diag.Diagnostic, error) {
	if ruleset == nil {
		ruleset = rules.Registry()
	}
	file := &rules.File{Path: path, Source: src}

	tree, err := pyast.Parse(ctx, src)
	switch {
	case err == nil:
		defer tree.Close()
		file.Tree = tree
	case errors.As(err, new(*pyast.ParseError)):
		slog.Debug("syntax error, tree checks skipped", "path", path, "err", err)
	default:
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	var out []diag.Diagnostic
	for _, r := range ruleset {
		out = append(out, r.Check(file)...)
	}
	return out, nil
}

// AnalyzeFile reads path once and checks it against ruleset.
func AnalyzeFile(ctx context.Context, path string, ruleset []rules.Rule) ([]diag.Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return AnalyzeSource(ctx, path, src, ruleset)
}
