package audit

import (
	"sort"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/shopspring/decimal"
)

// material reports whether a difference exceeds the rounding tolerance.
func material(d decimal.Decimal) bool {
	return d.Abs().GreaterThan(types.Tolerance)
}

// Reconcile outer-joins the fiscal and accounting summaries by code and keeps
// the codes whose accounting minus fiscal value is material, largest first.
// With either side empty nothing can be asserted and the result is nil.
func Reconcile(fiscal, accounting types.Summary) []types.AggregateDiscrepancy {
	if fiscal.Empty() || accounting.Empty() {
		return nil
	}

	joined := make(map[string]*types.AggregateDiscrepancy, len(fiscal.Rows)+len(accounting.Rows))
	var keys []string
	row := func(code string) *types.AggregateDiscrepancy {
		r, ok := joined[code]
		if !ok {
			r = &types.AggregateDiscrepancy{Code: code}
			joined[code] = r
			keys = append(keys, code)
		}
		return r
	}

	for _, s := range fiscal.Rows {
		r := row(s.Code)
		r.FiscalValue = r.FiscalValue.Add(s.Value)
	}
	for _, s := range accounting.Rows {
		r := row(s.Code)
		r.AccountingValue = r.AccountingValue.Add(s.Value)
	}
	sort.Strings(keys)

	var out []types.AggregateDiscrepancy
	for _, code := range keys {
		r := joined[code]
		r.Difference = r.AccountingValue.Sub(r.FiscalValue)
		if material(r.Difference) {
			out = append(out, *r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Difference.Abs().GreaterThan(out[j].Difference.Abs())
	})
	return out
}
