package audit

import (
	"testing"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedBindings(t *testing.T) {
	in := BindingFor(types.Inflows)
	assert.Equal(t, "Auxiliar entradas", in.Fiscal.Section)
	assert.Equal(t, "1106010001 ICMS A RECUPERAR", in.Accounting.Section)

	out := BindingFor(types.Outflows)
	assert.Equal(t, "Auxiliar Saídas", out.Fiscal.Section)
	assert.Equal(t, "2102010001 ICMS A PAGAR", out.Accounting.Section)

	for _, b := range []Binding{in, out} {
		assert.Equal(t, "CFOP", b.Fiscal.CodeColumn)
		assert.Equal(t, "Valor ICMS", b.Fiscal.ValueColumn)
		assert.Equal(t, "Nº da Nota Fiscal", b.Fiscal.InvoiceColumn)
		assert.Equal(t, "CFOP", b.Accounting.CodeColumn)
		assert.Equal(t, "Montante em moeda interna", b.Accounting.ValueColumn)
		assert.Equal(t, "Referência", b.Accounting.ReferenceColumn)
	}
}

func TestRequiredSections(t *testing.T) {
	assert.Equal(t, []string{
		"Auxiliar entradas",
		"1106010001 ICMS A RECUPERAR",
		"Auxiliar Saídas",
		"2102010001 ICMS A PAGAR",
	}, RequiredSections())
}

func TestParseBindingsRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "unknown direction",
			raw: `directions:
  - direction: sideways
    fiscal: {section: a}
    accounting: {section: b}`,
		},
		{
			name: "missing section",
			raw: `directions:
  - direction: inflows
    fiscal: {section: a}
    accounting: {}
  - direction: outflows
    fiscal: {section: c}
    accounting: {section: d}`,
		},
		{
			name: "duplicate direction",
			raw: `directions:
  - direction: inflows
    fiscal: {section: a}
    accounting: {section: b}
  - direction: inflows
    fiscal: {section: c}
    accounting: {section: d}`,
		},
		{
			name: "unbound direction",
			raw: `directions:
  - direction: inflows
    fiscal: {section: a}
    accounting: {section: b}`,
		},
		{
			name: "not yaml",
			raw:  "directions: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBindings([]byte(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestAccountingCodePattern(t *testing.T) {
	for _, code := range []string{"1234/SP", "5102/RJ"} {
		assert.True(t, AccountingCodePattern.MatchString(code), code)
	}
	for _, code := range []string{"TOTAL", "12/SP", "1234/sp", "1234/SPX", " 1234/SP", ""} {
		assert.False(t, AccountingCodePattern.MatchString(code), code)
	}
}
