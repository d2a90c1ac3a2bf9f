// Package testutil builds in-memory workbooks for loader and pipeline tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Sheet is one named section with its header as the first row.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// XLSX writes the sheets, in order, into an xlsx workbook.
func XLSX(t *testing.T, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.Name))
		} else {
			_, err := f.NewSheet(sheet.Name)
			require.NoError(t, err)
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(sheet.Name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// CSVBundle zips one Windows-1252, ';'-delimited CSV per section.
func CSVBundle(t *testing.T, sections map[string][][]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, rows := range sections {
		w, err := zw.Create(name + ".csv")
		require.NoError(t, err)

		var sb strings.Builder
		for _, row := range rows {
			sb.WriteString(strings.Join(row, ";"))
			sb.WriteString("\r\n")
		}
		encoded, err := charmap.Windows1252.NewEncoder().String(sb.String())
		require.NoError(t, err)
		_, err = w.Write([]byte(encoded))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// Zip builds an arbitrary zip, used to fake unsupported containers.
func Zip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
