package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type AuditRunStore struct {
	db *sqlx.DB
}

func (s *AuditRunStore) InsertAuditRun(ctx context.Context, run *AuditRun) error {
	query := `INSERT INTO audit_runs (
		id,
		source_name,
		source_digest,
		trigger_type,
		started_at,
		duration_ms,
		inflow_codes,
		inflow_invoices,
		inflow_total,
		outflow_codes,
		outflow_invoices,
		outflow_total,
		missing_sections
	) VALUES (
		:id,
		:source_name,
		:source_digest,
		:trigger_type,
		:started_at,
		:duration_ms,
		:inflow_codes,
		:inflow_invoices,
		:inflow_total,
		:outflow_codes,
		:outflow_invoices,
		:outflow_total,
		:missing_sections
	) RETURNING recorded_at`

	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, run)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&run.RecordedAt); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *AuditRunStore) GetLatest(ctx context.Context, limit int) ([]AuditRun, error) {
	query := `SELECT
		id,
		source_name,
		source_digest,
		trigger_type,
		started_at,
		duration_ms,
		inflow_codes,
		inflow_invoices,
		inflow_total,
		outflow_codes,
		outflow_invoices,
		outflow_total,
		missing_sections,
		recorded_at
	FROM audit_runs
	ORDER BY recorded_at DESC
	LIMIT $1`

	runs := []AuditRun{}
	if err := s.db.SelectContext(ctx, &runs, query, ClampLimit(limit)); err != nil {
		return nil, err
	}
	return runs, nil
}

// ClampLimit keeps history page sizes within 1..100, defaulting to 10.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 10
	case limit > 100:
		return 100
	}
	return limit
}
