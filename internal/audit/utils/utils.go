package utils

import "github.com/go-gota/gota/dataframe"

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// HasColumns reports whether df is non-empty and carries every named column.
func HasColumns(df *dataframe.DataFrame, cols ...string) bool {
	if df == nil || df.Err != nil || df.Nrow() == 0 {
		return false
	}
	names := df.Names()
	for _, col := range cols {
		if !containsString(names, col) {
			return false
		}
	}
	return true
}

// GetColumn returns the cells of col as text, or nil when the column is absent.
func GetColumn(col string, df *dataframe.DataFrame) []string {
	if df == nil {
		return nil
	}

	if containsString(df.Names(), col) {
		return df.Col(col).Records()
	}
	return nil
}
