package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"pyvet/internal/diag"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens the scan history database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			root TEXT NOT NULL,
			files INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS findings (
			run_id TEXT NOT NULL,
			file TEXT NOT NULL,
			rule_id TEXT NOT NULL,
			category TEXT NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL,
			line INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *diag.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, root, files) VALUES (?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.Root, run.Files); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (run_id, file, rule_id, category, severity, message, line)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range run.Diagnostics {
		if _, err := stmt.Exec(run.ID, d.File, d.RuleID, d.Category, string(d.Severity), d.Message, d.Line); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]diag.RunSummary, error) {
	// COUNT over a finding column keeps empty runs at zero instead of one
	query := `
		SELECT r.id, r.started_at, r.root, r.files, COUNT(f.rule_id)
		FROM runs r LEFT JOIN findings f ON f.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []diag.RunSummary
	for rows.Next() {
		var r diag.RunSummary
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Root, &r.Files, &r.Issues); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) LoadRun(ctx context.Context, id string) (*diag.Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, started_at, root, files FROM runs WHERE id = ?", id)

	run := &diag.Run{}
	if err := row.Scan(&run.ID, &run.StartedAt, &run.Root, &run.Files); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %q not found", id)
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT file, rule_id, category, severity, message, line
		FROM findings WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d diag.Diagnostic
		if err := rows.Scan(&d.File, &d.RuleID, &d.Category, &d.Severity, &d.Message, &d.Line); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		run.Diagnostics = append(run.Diagnostics, d)
	}
	return run, rows.Err()
}
