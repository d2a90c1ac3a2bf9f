package audit

import (
	"sort"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
)

type invoiceTotals map[int64]decimal.Decimal

func sumFiscalInvoices(df *dataframe.DataFrame, b Binding) invoiceTotals {
	numbers := utils.GetColumn(b.Fiscal.InvoiceColumn, df)
	values := utils.GetColumn(b.Fiscal.ValueColumn, df)

	totals := make(invoiceTotals)
	for i, raw := range numbers {
		n, ok := utils.ParseInvoiceNumber(raw)
		if !ok {
			continue
		}
		totals[n] = totals[n].Add(utils.ParseDecimal(values[i]))
	}
	return totals
}

func sumAccountingInvoices(df *dataframe.DataFrame, b Binding) invoiceTotals {
	references := utils.GetColumn(b.Accounting.ReferenceColumn, df)
	values := utils.GetColumn(b.Accounting.ValueColumn, df)

	totals := make(invoiceTotals)
	for i, ref := range references {
		n, ok := utils.ExtractInvoiceNumber(ref)
		if !ok {
			continue
		}
		totals[n] = totals[n].Add(utils.ParseDecimal(values[i]))
	}
	return totals
}

// ReconcileByInvoice compares per-invoice ICMS between the fiscal detail and the
// ledger. Ledger rows are keyed by the first number found in their reference
// text. Difference is fiscal minus accounting, the opposite of the aggregate
// convention.
func ReconcileByInvoice(fiscalDf, accountingDf dataframe.DataFrame, b Binding) []types.InvoiceDiscrepancy {
	if !utils.HasColumns(&fiscalDf, b.Fiscal.InvoiceColumn, b.Fiscal.ValueColumn) {
		return nil
	}
	if !utils.HasColumns(&accountingDf, b.Accounting.ReferenceColumn, b.Accounting.ValueColumn) {
		return nil
	}

	fiscal := sumFiscalInvoices(&fiscalDf, b)
	accounting := sumAccountingInvoices(&accountingDf, b)

	seen := make(map[int64]bool, len(fiscal)+len(accounting))
	var numbers []int64
	for n := range fiscal {
		seen[n] = true
		numbers = append(numbers, n)
	}
	for n := range accounting {
		if !seen[n] {
			numbers = append(numbers, n)
		}
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	var out []types.InvoiceDiscrepancy
	for _, n := range numbers {
		d := types.InvoiceDiscrepancy{
			InvoiceNumber:   n,
			FiscalValue:     fiscal[n],
			AccountingValue: accounting[n],
		}
		d.Difference = d.FiscalValue.Sub(d.AccountingValue)
		if material(d.Difference) {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Difference.Abs().GreaterThan(out[j].Difference.Abs())
	})
	return out
}
