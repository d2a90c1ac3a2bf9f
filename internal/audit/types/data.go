package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction int

const (
	Inflows Direction = iota
	Outflows
)

var DirectionNames = map[Direction]string{
	Inflows:  "Entradas",
	Outflows: "Saídas",
}

func (d Direction) String() string {
	if name, ok := DirectionNames[d]; ok {
		return name
	}
	return "Desconhecida"
}

// Column names of the reconciliation tables as consumed by reports.
const (
	ColumnCode                   = "Codigo"
	ColumnAccountingValue        = "Valor_Contabil_Auto"
	ColumnFiscalValue            = "Valor_Fiscal_Auto"
	ColumnDifference             = "Diferenca"
	ColumnProbableCause          = "Causa_Provavel"
	ColumnInvoiceNumber          = "Nº da Nota Fiscal"
	ColumnInvoiceFiscalValue     = "Valor_ICMS_Fiscal"
	ColumnInvoiceAccountingValue = "Valor_ICMS_Contabil"
	ColumnInvoiceDifference      = "Diferenca_NF"
)

// Tolerance below which a difference is treated as rounding noise.
var Tolerance = decimal.New(1, -2)

type CodeSummary struct {
	Code  string          `json:"Codigo"`
	Value decimal.Decimal `json:"value"`
}

// Summary is one source reduced to a single value per classification code.
// ValueName is the output column the value is reported under.
type Summary struct {
	ValueName string        `json:"value_name"`
	Rows      []CodeSummary `json:"rows"`
}

func (s Summary) Empty() bool {
	return len(s.Rows) == 0
}

type AggregateDiscrepancy struct {
	Code            string          `json:"Codigo"`
	AccountingValue decimal.Decimal `json:"Valor_Contabil_Auto"`
	FiscalValue     decimal.Decimal `json:"Valor_Fiscal_Auto"`
	Difference      decimal.Decimal `json:"Diferenca"`
	ProbableCause   string          `json:"Causa_Provavel"`
}

type InvoiceSummary struct {
	InvoiceNumber int64
	Value         decimal.Decimal
}

type InvoiceDiscrepancy struct {
	InvoiceNumber   int64           `json:"Nº da Nota Fiscal"`
	FiscalValue     decimal.Decimal `json:"Valor_ICMS_Fiscal"`
	AccountingValue decimal.Decimal `json:"Valor_ICMS_Contabil"`
	Difference      decimal.Decimal `json:"Diferenca_NF"`
}

type DirectionResult struct {
	Direction            Direction              `json:"-"`
	Name                 string                 `json:"name"`
	Discrepancies        []AggregateDiscrepancy `json:"discrepancies"`
	InvoiceDiscrepancies []InvoiceDiscrepancy   `json:"invoice_discrepancies"`
}

type Report struct {
	RunID           uuid.UUID       `json:"run_id"`
	SourceName      string          `json:"source_name"`
	SourceDigest    string          `json:"source_digest"`
	StartedAt       time.Time       `json:"started_at"`
	Elapsed         time.Duration   `json:"elapsed_ns"`
	MissingSections []string        `json:"missing_sections"`
	Inflows         DirectionResult `json:"inflows"`
	Outflows        DirectionResult `json:"outflows"`
}

func (r *Report) Result(d Direction) DirectionResult {
	if d == Outflows {
		return r.Outflows
	}
	return r.Inflows
}
