package audit

import (
	"context"
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
	"github.com/farxc/auditor-fiscal-contabil/internal/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Auditor runs the reconciliation pipeline over a workbook snapshot.
type Auditor struct {
	loader    workbook.Loader
	appLogger *logger.Logger

	// OnDirectionDone, when set, is called once per finished direction. It may
	// be called from several goroutines.
	OnDirectionDone func(types.DirectionResult)
}

func NewAuditor(loader workbook.Loader, appLogger *logger.Logger) *Auditor {
	return &Auditor{loader: loader, appLogger: appLogger}
}

// RunDirection reconciles one direction. The only error is a cancelled ctx.
func (a *Auditor) RunDirection(ctx context.Context, src workbook.Source, dir types.Direction) (types.DirectionResult, error) {
	const component = "DirectionRunner"
	result := types.DirectionResult{Direction: dir, Name: dir.String()}
	b := BindingFor(dir)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	fiscalDf := a.loader.Load(src, b.Fiscal.Section)
	accountingDf := a.loader.Load(src, b.Accounting.Section)
	a.appLogger.Debug(component, "Sections loaded: direction=%s fiscalRows=%d accountingRows=%d", dir, fiscalDf.Nrow(), accountingDf.Nrow())

	if err := ctx.Err(); err != nil {
		return types.DirectionResult{Direction: dir, Name: dir.String()}, err
	}
	fiscal := SummarizeFiscal(fiscalDf, b)
	accounting := SummarizeAccounting(accountingDf, b)
	discrepancies := Reconcile(fiscal, accounting)

	if err := ctx.Err(); err != nil {
		return types.DirectionResult{Direction: dir, Name: dir.String()}, err
	}
	invoices := ReconcileByInvoice(fiscalDf, accountingDf, b)

	result.Discrepancies = Attribute(discrepancies, invoices)
	result.InvoiceDiscrepancies = invoices

	a.appLogger.Info(component, "Direction reconciled: direction=%s codes=%d invoices=%d", dir, len(result.Discrepancies), len(result.InvoiceDiscrepancies))
	return result, nil
}

// Run reconciles both directions in parallel and assembles the report.
// Missing sections are recorded but do not stop the run.
func (a *Auditor) Run(ctx context.Context, src workbook.Source) (*types.Report, error) {
	const component = "Auditor"

	report := &types.Report{
		RunID:        uuid.New(),
		SourceName:   src.Name,
		SourceDigest: src.Digest,
		StartedAt:    time.Now(),
	}
	report.MissingSections = workbook.Missing(src, RequiredSections())
	if len(report.MissingSections) > 0 {
		a.appLogger.Warn(component, "Workbook is missing sections: source=%s missing=%v", src.Name, report.MissingSections)
	}

	a.appLogger.Info(component, "Starting audit: runID=%s source=%s format=%s sizeBytes=%d", report.RunID, src.Name, src.Format, src.Size())

	g, gctx := errgroup.WithContext(ctx)
	results := make([]types.DirectionResult, len(Directions()))
	for i, dir := range Directions() {
		g.Go(func() error {
			res, err := a.RunDirection(gctx, src, dir)
			if err != nil {
				return err
			}
			results[i] = res
			if a.OnDirectionDone != nil {
				a.OnDirectionDone(res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.appLogger.Warn(component, "Audit cancelled: runID=%s error=%v", report.RunID, err)
		return nil, err
	}

	for _, res := range results {
		switch res.Direction {
		case types.Inflows:
			report.Inflows = res
		case types.Outflows:
			report.Outflows = res
		}
	}
	report.Elapsed = time.Since(report.StartedAt)

	a.appLogger.Info(component, "Audit finished: runID=%s inflowCodes=%d outflowCodes=%d elapsed=%s", report.RunID, len(report.Inflows.Discrepancies), len(report.Outflows.Discrepancies), report.Elapsed)
	return report, nil
}
