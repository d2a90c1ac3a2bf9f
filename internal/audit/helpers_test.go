package audit

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, records ...[]string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	require.NoError(t, df.Err)
	return df
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
