package audit

import (
	"fmt"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
)

const (
	invoiceCauseFormat = "Possível erro de lançamento na NF %d."
	ManualReviewCause  = "Investigação Manual Necessária"
)

// InvoiceCause is the explanation attached to a code whose difference is
// offset by a single invoice.
func InvoiceCause(invoiceNumber int64) string {
	return fmt.Sprintf(invoiceCauseFormat, invoiceNumber)
}

// Attribute returns a copy of agg with ProbableCause filled in. A code is
// blamed on the first invoice whose difference cancels the code's difference
// rounded to cents; invoice differences run fiscal minus accounting, so a
// match is the additive inverse.
func Attribute(agg []types.AggregateDiscrepancy, inv []types.InvoiceDiscrepancy) []types.AggregateDiscrepancy {
	if len(agg) == 0 {
		return nil
	}

	out := make([]types.AggregateDiscrepancy, len(agg))
	for i, row := range agg {
		row.ProbableCause = ManualReviewCause
		rounded := row.Difference.RoundBank(2)
		for _, d := range inv {
			if d.Difference.Add(rounded).Abs().LessThan(types.Tolerance) {
				row.ProbableCause = InvoiceCause(d.InvoiceNumber)
				break
			}
		}
		out[i] = row
	}
	return out
}
