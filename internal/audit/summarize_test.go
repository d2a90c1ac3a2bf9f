package audit

import (
	"testing"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeGroupsAndSums(t *testing.T) {
	df := frame(t,
		[]string{"CFOP", "Valor ICMS"},
		[]string{"5102", "100.10"},
		[]string{"1102", "50"},
		[]string{"5102", "0.90"},
		[]string{"5102", "not a number"},
		[]string{"", "999"},
		[]string{"1102", "1.234,56"},
	)

	got := Summarize(df, "CFOP", "Valor ICMS", types.ColumnFiscalValue, nil)

	assert.Equal(t, types.ColumnFiscalValue, got.ValueName)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "1102", got.Rows[0].Code)
	assert.True(t, dec("1284.56").Equal(got.Rows[0].Value), got.Rows[0].Value.String())
	assert.Equal(t, "5102", got.Rows[1].Code)
	assert.True(t, dec("101").Equal(got.Rows[1].Value), got.Rows[1].Value.String())
}

func TestSummarizeAppliesCodeFilterAfterGrouping(t *testing.T) {
	df := frame(t,
		[]string{"CFOP", "Montante em moeda interna"},
		[]string{"1234/SP", "10"},
		[]string{"TOTAL", "10"},
		[]string{"12/SP", "3"},
		[]string{"1234/sp", "4"},
		[]string{"1234/SP", "5"},
	)

	got := SummarizeAccounting(df, BindingFor(types.Inflows))

	assert.Equal(t, types.ColumnAccountingValue, got.ValueName)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1234/SP", got.Rows[0].Code)
	assert.True(t, dec("15").Equal(got.Rows[0].Value))
}

func TestSummarizeEmptyInputs(t *testing.T) {
	b := BindingFor(types.Outflows)

	assert.True(t, SummarizeFiscal(dataframe.DataFrame{}, b).Empty())

	missingValue := frame(t,
		[]string{"CFOP", "Outra"},
		[]string{"5102", "1"},
	)
	assert.True(t, SummarizeFiscal(missingValue, b).Empty())
}

func TestSummarizeKeepsCodesAsWritten(t *testing.T) {
	ledger := frame(t,
		[]string{"CFOP", "Montante em moeda interna"},
		[]string{" 1234/SP", "10"},
		[]string{"1234/SP\t", "5"},
		[]string{"1234/SP", "2"},
		[]string{"   ", "99"},
	)

	got := SummarizeAccounting(ledger, BindingFor(types.Inflows))

	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1234/SP", got.Rows[0].Code)
	assert.True(t, dec("2").Equal(got.Rows[0].Value), got.Rows[0].Value.String())

	fiscal := frame(t,
		[]string{"CFOP", "Valor ICMS"},
		[]string{"1102", "1"},
		[]string{"1102 ", "2"},
	)

	rows := SummarizeFiscal(fiscal, BindingFor(types.Inflows)).Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "1102", rows[0].Code)
	assert.Equal(t, "1102 ", rows[1].Code)
}
