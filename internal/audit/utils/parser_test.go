package utils

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "150.25", "150.25"},
		{"negative", "-20", "-20"},
		{"padded", "  10.5 ", "10.5"},
		{"scientific", "1.5e2", "150"},
		{"pt-BR with thousands", "1.234,56", "1234.56"},
		{"pt-BR decimal only", "0,01", "0.01"},
		{"pt-BR negative", "-1.234,5", "-1234.5"},
		{"us thousands", "1,234.56", "0"},
		{"two commas", "1,234,56", "0"},
		{"trailing comma", "12,", "0"},
		{"empty", "", "0"},
		{"gota NaN", "NaN", "0"},
		{"text", "isento", "0"},
		{"currency symbol", "R$ 10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimal(tt.in)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseInvoiceNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOk bool
	}{
		{"452", 452, true},
		{"00452", 452, true},
		{"452.0", 452, true},
		{" 17 ", 17, true},
		{"452.5", 0, false},
		{"NF 452", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInvoiceNumber(tt.in)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractInvoiceNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOk bool
	}{
		{"Ref NF 00452/A", 452, true},
		{"NF 1001 serie 2", 1001, true},
		{"123", 123, true},
		{"sem referencia", 0, false},
		{"", 0, false},
		{"nan", 0, false},
		{"NF 99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ExtractInvoiceNumber(tt.in)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasColumns(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"5102/SP"}, series.String, "CFOP"),
		series.New([]string{"10"}, series.String, "Valor ICMS"),
	)

	assert.True(t, HasColumns(&df, "CFOP", "Valor ICMS"))
	assert.False(t, HasColumns(&df, "CFOP", "Referência"))
	assert.False(t, HasColumns(nil, "CFOP"))

	empty := dataframe.DataFrame{}
	assert.False(t, HasColumns(&empty))

	assert.Equal(t, []string{"5102/SP"}, GetColumn("CFOP", &df))
	assert.Nil(t, GetColumn("Referência", &df))
}
