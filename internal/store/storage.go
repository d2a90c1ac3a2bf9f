package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	AuditRuns interface {
		InsertAuditRun(ctx context.Context, run *AuditRun) error
		GetLatest(ctx context.Context, limit int) ([]AuditRun, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		AuditRuns: &AuditRunStore{db: db},
	}
}
