package audit

import (
	"testing"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeMatchesAdditiveInverse(t *testing.T) {
	agg := []types.AggregateDiscrepancy{
		{Code: "1000/SP", Difference: dec("150.00")},
		{Code: "2000/RJ", Difference: dec("42.00")},
	}
	inv := []types.InvoiceDiscrepancy{
		{InvoiceNumber: 12, Difference: dec("150.00")},
		{InvoiceNumber: 452, Difference: dec("-150.00")},
	}

	got := Attribute(agg, inv)

	require.Len(t, got, 2)
	assert.Equal(t, "Possível erro de lançamento na NF 452.", got[0].ProbableCause)
	assert.Equal(t, ManualReviewCause, got[1].ProbableCause)
	assert.Empty(t, agg[0].ProbableCause)
}

func TestAttributeRoundsAggregateToCents(t *testing.T) {
	agg := []types.AggregateDiscrepancy{{Code: "1000/SP", Difference: dec("-10.004")}}
	inv := []types.InvoiceDiscrepancy{{InvoiceNumber: 7, Difference: dec("10.00")}}

	got := Attribute(agg, inv)

	require.Len(t, got, 1)
	assert.Equal(t, InvoiceCause(7), got[0].ProbableCause)
}

func TestAttributeFirstMatchWins(t *testing.T) {
	agg := []types.AggregateDiscrepancy{{Code: "1000/SP", Difference: dec("5")}}
	inv := []types.InvoiceDiscrepancy{
		{InvoiceNumber: 30, Difference: dec("-5")},
		{InvoiceNumber: 10, Difference: dec("-5")},
	}

	got := Attribute(agg, inv)
	assert.Equal(t, InvoiceCause(30), got[0].ProbableCause)
}

func TestAttributeEdgeCases(t *testing.T) {
	assert.Nil(t, Attribute(nil, []types.InvoiceDiscrepancy{{InvoiceNumber: 1, Difference: dec("1")}}))

	got := Attribute([]types.AggregateDiscrepancy{{Code: "1000/SP", Difference: dec("3")}}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, ManualReviewCause, got[0].ProbableCause)
}

func TestAttributeToleranceIsStrict(t *testing.T) {
	agg := []types.AggregateDiscrepancy{
		{Code: "1000/SP", Difference: dec("10.01")},
		{Code: "2000/SP", Difference: dec("10.009")},
	}
	inv := []types.InvoiceDiscrepancy{{InvoiceNumber: 8, Difference: dec("-10.00")}}

	got := Attribute(agg, inv)

	require.Len(t, got, 2)
	assert.Equal(t, ManualReviewCause, got[0].ProbableCause)
	assert.Equal(t, ManualReviewCause, got[1].ProbableCause)
}
