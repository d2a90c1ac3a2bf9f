package store

import (
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// AuditRun represents the 'audit_runs' table. Only run metadata is kept; the
// discrepancy tables themselves are never persisted.
type AuditRun struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	SourceName      string          `db:"source_name" json:"source_name"`
	SourceDigest    string          `db:"source_digest" json:"source_digest"`
	Trigger         string          `db:"trigger_type" json:"trigger_type"`
	StartedAt       time.Time       `db:"started_at" json:"started_at"`
	DurationMs      int64           `db:"duration_ms" json:"duration_ms"`
	InflowCodes     int             `db:"inflow_codes" json:"inflow_codes"`
	InflowInvoices  int             `db:"inflow_invoices" json:"inflow_invoices"`
	InflowTotal     decimal.Decimal `db:"inflow_total" json:"inflow_total"`
	OutflowCodes    int             `db:"outflow_codes" json:"outflow_codes"`
	OutflowInvoices int             `db:"outflow_invoices" json:"outflow_invoices"`
	OutflowTotal    decimal.Decimal `db:"outflow_total" json:"outflow_total"`
	MissingSections pq.StringArray  `db:"missing_sections" json:"missing_sections"`
	RecordedAt      time.Time       `db:"recorded_at" json:"recorded_at"`
}

var (
	TriggerTypeCLI = "cli"
	TriggerTypeAPI = "api"
)

// NewAuditRun summarizes a finished report into a history row.
func NewAuditRun(r *types.Report, trigger string) *AuditRun {
	run := &AuditRun{
		ID:              r.RunID,
		SourceName:      r.SourceName,
		SourceDigest:    r.SourceDigest,
		Trigger:         trigger,
		StartedAt:       r.StartedAt,
		DurationMs:      r.Elapsed.Milliseconds(),
		InflowCodes:     len(r.Inflows.Discrepancies),
		InflowInvoices:  len(r.Inflows.InvoiceDiscrepancies),
		InflowTotal:     sumDifferences(r.Inflows),
		OutflowCodes:    len(r.Outflows.Discrepancies),
		OutflowInvoices: len(r.Outflows.InvoiceDiscrepancies),
		OutflowTotal:    sumDifferences(r.Outflows),
		MissingSections: pq.StringArray(r.MissingSections),
	}
	if run.MissingSections == nil {
		run.MissingSections = pq.StringArray{}
	}
	return run
}

func sumDifferences(res types.DirectionResult) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range res.Discrepancies {
		sum = sum.Add(d.Difference)
	}
	return sum
}
