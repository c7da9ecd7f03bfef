package storage

import (
	"context"

	"pyvet/internal/diag"
)

// RunStore persists completed scans and serves them back for history
// queries.
type RunStore interface {
	// SaveRun persists a run and all of its findings atomically.
	SaveRun(ctx context.Context, run *diag.Run) error

	// ListRuns returns stored runs, newest first. A limit of zero or
	// less means no cap.
	ListRuns(ctx context.Context, limit int) ([]diag.RunSummary, error)

	// LoadRun retrieves one run with its findings by ID.
	LoadRun(ctx context.Context, id string) (*diag.Run, error)

	Close() error
}
