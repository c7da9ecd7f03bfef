package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"pyvet/internal/diag"
)

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgCyan)
)

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SeverityHigh:
		return highColor
	case diag.SeverityMedium:
		return mediumColor
	default:
		return lowColor
	}
}

// PrintFindings writes one line per finding to w.
func PrintFindings(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		sev := severityColor(d.Severity).Sprintf("[%s]", d.Severity)
		fmt.Fprintf(w, "%s:%d %s %s %s\n", d.File, d.Line, sev, d.RuleID, d.Message)
	}
}

// PrintSummary writes the closing scan lines, plus a severity breakdown
// when anything was found.
func PrintSummary(w io.Writer, output string, diags []diag.Diagnostic) {
	fmt.Fprintf(w, "✔ Analysis complete. Report saved to %s\n", output)
	fmt.Fprintf(w, "✔ Issues found: %d\n", len(diags))
	if len(diags) == 0 {
		return
	}

	counts := diag.CountBySeverity(diags)
	sevs := make([]diag.Severity, 0, len(counts))
	for sev := range counts {
		sevs = append(sevs, sev)
	}
	slices.SortFunc(sevs, func(a, b diag.Severity) int { return b.Rank() - a.Rank() })

	parts := make([]string, 0, len(sevs))
	for _, sev := range sevs {
		parts = append(parts, severityColor(sev).Sprintf("%s: %d", sev, counts[sev]))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  "))
}
