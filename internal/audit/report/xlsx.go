package report

import (
	"fmt"
	"io"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Resumo"

var amountColumns = map[string]bool{
	types.ColumnAccountingValue:        true,
	types.ColumnFiscalValue:            true,
	types.ColumnDifference:             true,
	types.ColumnInvoiceFiscalValue:     true,
	types.ColumnInvoiceAccountingValue: true,
	types.ColumnInvoiceDifference:      true,
}

// WriteWorkbook writes the report as an xlsx workbook: a summary sheet
// followed by one sheet per result table. Amounts are written as numbers.
func WriteWorkbook(w io.Writer, r *types.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, r); err != nil {
		return err
	}

	for _, t := range Tables(r) {
		if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", t.Name, err)
		}
		records := t.Frame.Records()
		header := records[0]
		for i, rec := range records {
			row := make([]interface{}, len(rec))
			for j, cell := range rec {
				row[j] = cell
				if i > 0 && amountColumns[header[j]] {
					row[j] = decimal.RequireFromString(cell).InexactFloat64()
				}
			}
			if err := setRow(f, t.Name, i, row); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(t.Name, "A", "E", 22); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r *types.Report) error {
	rows := [][]interface{}{
		{"Execução", r.RunID.String()},
		{"Arquivo", r.SourceName},
		{"SHA-256", r.SourceDigest},
		{"Início", r.StartedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Direção", "CFOPs divergentes", "NFs divergentes", "Diferença total"},
	}
	for _, dir := range []types.Direction{types.Inflows, types.Outflows} {
		t := Totals(r.Result(dir))
		rows = append(rows, []interface{}{t.Direction, t.Codes, t.Invoices, t.Sum.InexactFloat64()})
	}
	if len(r.MissingSections) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Seções ausentes"})
		for _, s := range r.MissingSections {
			rows = append(rows, []interface{}{s})
		}
	}

	for i, row := range rows {
		if err := setRow(f, summarySheet, i, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "D", 24)
}

func setRow(f *excelize.File, sheet string, idx int, row []interface{}) error {
	if len(row) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, idx+1)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &row)
}
