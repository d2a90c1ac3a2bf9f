package report

import (
	"strconv"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DiscrepancyFrame renders aggregate discrepancies with the column names the
// reports have always used.
func DiscrepancyFrame(rows []types.AggregateDiscrepancy) dataframe.DataFrame {
	codes := make([]string, 0, len(rows))
	accounting := make([]string, 0, len(rows))
	fiscal := make([]string, 0, len(rows))
	diffs := make([]string, 0, len(rows))
	causes := make([]string, 0, len(rows))

	for _, r := range rows {
		codes = append(codes, r.Code)
		accounting = append(accounting, money(r.AccountingValue))
		fiscal = append(fiscal, money(r.FiscalValue))
		diffs = append(diffs, money(r.Difference))
		causes = append(causes, r.ProbableCause)
	}

	return dataframe.New(
		series.New(codes, series.String, types.ColumnCode),
		series.New(accounting, series.String, types.ColumnAccountingValue),
		series.New(fiscal, series.String, types.ColumnFiscalValue),
		series.New(diffs, series.String, types.ColumnDifference),
		series.New(causes, series.String, types.ColumnProbableCause),
	)
}

func InvoiceFrame(rows []types.InvoiceDiscrepancy) dataframe.DataFrame {
	numbers := make([]string, 0, len(rows))
	fiscal := make([]string, 0, len(rows))
	accounting := make([]string, 0, len(rows))
	diffs := make([]string, 0, len(rows))

	for _, r := range rows {
		numbers = append(numbers, strconv.FormatInt(r.InvoiceNumber, 10))
		fiscal = append(fiscal, money(r.FiscalValue))
		accounting = append(accounting, money(r.AccountingValue))
		diffs = append(diffs, money(r.Difference))
	}

	return dataframe.New(
		series.New(numbers, series.String, types.ColumnInvoiceNumber),
		series.New(fiscal, series.String, types.ColumnInvoiceFiscalValue),
		series.New(accounting, series.String, types.ColumnInvoiceAccountingValue),
		series.New(diffs, series.String, types.ColumnInvoiceDifference),
	)
}
