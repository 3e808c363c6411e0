// Package postgres persists finished analysis runs.
package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"statreport/domain/analysis"
	"statreport/internal/errors"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id       TEXT PRIMARY KEY,
	project_name TEXT NOT NULL,
	source_path  TEXT NOT NULL,
	row_count    INTEGER NOT NULL,
	col_count    INTEGER NOT NULL,
	report       JSONB NOT NULL,
	markdown     TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
)`

// ReportRepository stores one row per analysis run: identity, dataset
// shape, the full report as JSON, and the rendered markdown.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository connects to Postgres and ensures the schema exists.
func NewReportRepository(ctx context.Context, databaseURL string) (*ReportRepository, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to ensure analysis_runs schema", err)
	}
	return &ReportRepository{db: db}, nil
}

// Save inserts a finished run.
func (r *ReportRepository) Save(ctx context.Context, report *analysis.Report, markdown string) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.DatabaseError("failed to encode report", err)
	}

	const q = `
		INSERT INTO analysis_runs
			(run_id, project_name, source_path, row_count, col_count, report, markdown, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.ExecContext(ctx, q,
		report.Meta.RunID,
		report.Meta.ProjectName,
		report.Meta.SourcePath,
		report.Meta.Rows,
		report.Meta.Cols,
		payload,
		markdown,
		report.Meta.GeneratedAt,
	)
	if err != nil {
		return errors.DatabaseError("failed to insert analysis run", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *ReportRepository) Close() error {
	return r.db.Close()
}
