package diag

import "time"

// Run captures one scan invocation for the history store.
type Run struct {
	ID          string       `json:"id"`
	StartedAt   time.Time    `json:"started_at"`
	Root        string       `json:"root"`
	Files       int          `json:"files"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// RunSummary is the listing row for stored runs.
type RunSummary struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Root      string    `json:"root"`
	Files     int       `json:"files"`
	Issues    int       `json:"issues"`
}

// CountBySeverity tallies diagnostics per severity level.
func CountBySeverity(diags []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}
