// Package diag defines the wire-level finding types shared by the rule
// engine, the report writers and the history store.
package diag

// Severity grades how urgent a finding is.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Rank orders severities for display purposes (HIGH > MEDIUM > LOW).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Diagnostic is one reported finding. The JSON field set is the legacy
// report format and must not grow or change names.
type Diagnostic struct {
	File     string   `json:"file"`
	RuleID   string   `json:"rule_id"`
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
}
