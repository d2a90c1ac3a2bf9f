package audit

import (
	"regexp"
	"sort"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
)

// Summarize reduces a detail table to one row per code, summing valueColumn.
// Uncoercible values count as zero; rows without a code are skipped. Codes are
// grouped and filtered exactly as written in the cell. When codeFilter is
// set, codes that do not match it are dropped after grouping.
// Rows come out in ascending code order.
func Summarize(df dataframe.DataFrame, groupColumn, valueColumn, valueName string, codeFilter *regexp.Regexp) types.Summary {
	summary := types.Summary{ValueName: valueName}
	if !utils.HasColumns(&df, groupColumn, valueColumn) {
		return summary
	}

	codes := utils.GetColumn(groupColumn, &df)
	values := utils.GetColumn(valueColumn, &df)

	totals := make(map[string]decimal.Decimal)
	for i, code := range codes {
		if utils.IsMissing(code) {
			continue
		}
		totals[code] = totals[code].Add(utils.ParseDecimal(values[i]))
	}

	keys := make([]string, 0, len(totals))
	for code := range totals {
		if codeFilter != nil && !codeFilter.MatchString(code) {
			continue
		}
		keys = append(keys, code)
	}
	sort.Strings(keys)

	summary.Rows = make([]types.CodeSummary, 0, len(keys))
	for _, code := range keys {
		summary.Rows = append(summary.Rows, types.CodeSummary{Code: code, Value: totals[code]})
	}
	return summary
}

// SummarizeFiscal summarizes the fiscal detail section of a binding.
func SummarizeFiscal(df dataframe.DataFrame, b Binding) types.Summary {
	return Summarize(df, b.Fiscal.CodeColumn, b.Fiscal.ValueColumn, types.ColumnFiscalValue, nil)
}

// SummarizeAccounting summarizes the ledger section of a binding, keeping only
// well-formed CFOP codes.
func SummarizeAccounting(df dataframe.DataFrame, b Binding) types.Summary {
	return Summarize(df, b.Accounting.CodeColumn, b.Accounting.ValueColumn, types.ColumnAccountingValue, AccountingCodePattern)
}
