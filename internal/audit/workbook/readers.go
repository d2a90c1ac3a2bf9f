package workbook

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// container is one decoded workbook.
type container interface {
	Sections() []string
	// Rows returns the raw cell grid of a section; found is false when the
	// section does not exist.
	Rows(section string) (rows [][]string, found bool, err error)
	Close() error
}

// ErrUnsupportedXLSB is returned by Sections for binary (.xlsb) workbooks.
var ErrUnsupportedXLSB = errors.New("xlsb workbooks are not supported, save the file as .xlsx and upload it again")

func openContainer(src Source) (container, error) {
	switch src.Format {
	case FormatXLSX:
		return openXLSX(src.blob)
	case FormatXLS:
		return openXLS(src.blob)
	case FormatCSVBundle:
		return openCSVBundle(src.blob)
	case FormatXLSB:
		return nil, ErrUnsupportedXLSB
	default:
		return nil, fmt.Errorf("unrecognized workbook container")
	}
}

type xlsxContainer struct {
	f *excelize.File
}

func openXLSX(blob []byte) (container, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	return &xlsxContainer{f: f}, nil
}

func (c *xlsxContainer) Sections() []string {
	return c.f.GetSheetList()
}

func (c *xlsxContainer) Rows(section string) ([][]string, bool, error) {
	if !containsString(c.Sections(), section) {
		return nil, false, nil
	}
	rows, err := c.f.GetRows(section, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, true, fmt.Errorf("failed to read sheet %s: %w", section, err)
	}
	return rows, true, nil
}

func (c *xlsxContainer) Close() error {
	return c.f.Close()
}

type xlsContainer struct {
	wb *xls.WorkBook
}

func openXLS(blob []byte) (c container, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("failed to open xls: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(blob), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("failed to open xls: no workbook stream")
	}
	return &xlsContainer{wb: wb}, nil
}

func (c *xlsContainer) Sections() []string {
	names := make([]string, 0, c.wb.NumSheets())
	for i := 0; i < c.wb.NumSheets(); i++ {
		if sheet := c.wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (c *xlsContainer) Rows(section string) ([][]string, bool, error) {
	var sheet *xls.WorkSheet
	for i := 0; i < c.wb.NumSheets(); i++ {
		if s := c.wb.GetSheet(i); s != nil && s.Name == section {
			sheet = s
			break
		}
	}
	if sheet == nil {
		return nil, false, nil
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		rows = append(rows, xlsRow(sheet, i))
	}
	return rows, true, nil
}

// xlsRow reads one row; rows the sheet never stored come back empty.
func xlsRow(sheet *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := sheet.Row(i)
	if row == nil {
		return nil
	}
	cells = make([]string, row.LastCol()+1)
	for j := row.FirstCol(); j <= row.LastCol(); j++ {
		cells[j] = row.Col(j)
	}
	return cells
}

func (c *xlsContainer) Close() error {
	return nil
}

// csvBundle is a zip of ';'-delimited, Windows-1252 CSV files, one per
// section, named "<section>.csv".
type csvBundle struct {
	files map[string]*zip.File
	order []string
}

func openCSVBundle(blob []byte) (container, error) {
	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("failed to open csv bundle: %w", err)
	}

	b := &csvBundle{files: make(map[string]*zip.File)}
	for _, f := range r.File {
		base := path.Base(f.Name)
		if !strings.EqualFold(path.Ext(base), ".csv") {
			continue
		}
		section := strings.TrimSuffix(base, path.Ext(base))
		if _, dup := b.files[section]; dup {
			continue
		}
		b.files[section] = f
		b.order = append(b.order, section)
	}
	return b, nil
}

func (b *csvBundle) Sections() []string {
	return append([]string(nil), b.order...)
}

func (b *csvBundle) Rows(section string) ([][]string, bool, error) {
	f, ok := b.files[section]
	if !ok {
		return nil, false, nil
	}

	rc, err := f.Open()
	if err != nil {
		return nil, true, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	rows, err := readCSV(rc)
	if err != nil {
		return nil, true, fmt.Errorf("failed to parse %s: %w", f.Name, err)
	}
	return rows, true, nil
}

func (b *csvBundle) Close() error {
	return nil
}

func readCSV(r io.Reader) ([][]string, error) {
	// Using Windows1252 because it is the encoding ledger exports are written in
	decoded := charmap.Windows1252.NewDecoder().Reader(r)

	cr := csv.NewReader(decoded)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
