package testutil

import "testing"

// SampleSheets is a small ICMS workbook. Entradas has three divergent codes:
// 1102/SP (-150, offset by NF 452), 5949/SP (10, offset by NF 999) and
// 1949/SP (7.5, no invoice). Saídas reconciles cleanly.
func SampleSheets() []Sheet {
	return []Sheet{
		{Name: "Auxiliar entradas", Rows: [][]interface{}{
			{"CFOP", "Nº da Nota Fiscal", "Valor ICMS"},
			{"1102/SP", 452, 300},
			{"1102/SP", 453, 200},
			{"2102/SP", 500, 50},
		}},
		{Name: "1106010001 ICMS A RECUPERAR", Rows: [][]interface{}{
			{"CFOP", "Referência", "Montante em moeda interna"},
			{"1102/SP", "Ref NF 00452/A", 150},
			{"1102/SP", "NF 453", 200},
			{"2102/SP", "NF 500", 50},
			{"5949/SP", "NF 999", 10},
			{"1949/SP", "ajuste manual", 7.5},
			{"TOTAL", "", 417.5},
		}},
		{Name: "Auxiliar Saídas", Rows: [][]interface{}{
			{"CFOP", "Nº da Nota Fiscal", "Valor ICMS"},
			{"5102/SP", 1001, 80},
		}},
		{Name: "2102010001 ICMS A PAGAR", Rows: [][]interface{}{
			{"CFOP", "Referência", "Montante em moeda interna"},
			{"5102/SP", "NF 1001", 80},
		}},
	}
}

// SampleWorkbook renders SampleSheets as xlsx, leaving out the named sections.
func SampleWorkbook(t *testing.T, omit ...string) []byte {
	t.Helper()

	var sheets []Sheet
	for _, s := range SampleSheets() {
		if !contains(omit, s.Name) {
			sheets = append(sheets, s)
		}
	}
	return XLSX(t, sheets...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
