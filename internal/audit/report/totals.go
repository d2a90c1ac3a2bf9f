package report

import (
	"fmt"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

type DirectionTotals struct {
	Direction string          `json:"direction"`
	Codes     int             `json:"divergent_codes"`
	Invoices  int             `json:"divergent_invoices"`
	Sum       decimal.Decimal `json:"total_difference"`
	Formatted string          `json:"total_difference_brl"`
}

// Totals counts the divergent codes and invoices of a direction and sums the
// signed aggregate differences.
func Totals(result types.DirectionResult) DirectionTotals {
	sum := decimal.Zero
	for _, d := range result.Discrepancies {
		sum = sum.Add(d.Difference)
	}
	return DirectionTotals{
		Direction: result.Name,
		Codes:     len(result.Discrepancies),
		Invoices:  len(result.InvoiceDiscrepancies),
		Sum:       sum,
		Formatted: FormatBRL(sum),
	}
}

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + brPrinter.Sprintf("%.2f", d.RoundBank(2).InexactFloat64())
}

// Describe is the one-line summary shown after a run.
func Describe(result types.DirectionResult) string {
	if len(result.Discrepancies) == 0 {
		return fmt.Sprintf("%s: Nenhuma divergência encontrada", result.Name)
	}
	t := Totals(result)
	return fmt.Sprintf("%s: %d CFOPs com divergência, total %s", result.Name, t.Codes, t.Formatted)
}
