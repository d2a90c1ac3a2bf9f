package audit

import (
	_ "embed"
	"fmt"
	"regexp"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"gopkg.in/yaml.v3"
)

//go:embed bindings.yaml
var bindingsYAML []byte

// AccountingCodePattern is the CFOP format kept on the accounting side; ledger
// subtotals and other classification noise do not match it.
var AccountingCodePattern = regexp.MustCompile(`^\d{4}/[A-Z]{2}$`)

type FiscalColumns struct {
	Section       string `yaml:"section"`
	CodeColumn    string `yaml:"code_column"`
	ValueColumn   string `yaml:"value_column"`
	InvoiceColumn string `yaml:"invoice_column"`
}

type AccountingColumns struct {
	Section         string `yaml:"section"`
	CodeColumn      string `yaml:"code_column"`
	ValueColumn     string `yaml:"value_column"`
	ReferenceColumn string `yaml:"reference_column"`
}

// Binding ties a direction to its pair of sections and their column names.
type Binding struct {
	Direction  types.Direction   `yaml:"-"`
	Key        string            `yaml:"direction"`
	Fiscal     FiscalColumns     `yaml:"fiscal"`
	Accounting AccountingColumns `yaml:"accounting"`
}

type bindingsFile struct {
	Directions []Binding `yaml:"directions"`
}

var directionKeys = map[string]types.Direction{
	"inflows":  types.Inflows,
	"outflows": types.Outflows,
}

var bindings = mustParseBindings(bindingsYAML)

func parseBindings(raw []byte) (map[types.Direction]Binding, error) {
	var file bindingsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bindings: %w", err)
	}

	out := make(map[types.Direction]Binding, len(file.Directions))
	for _, b := range file.Directions {
		dir, ok := directionKeys[b.Key]
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", b.Key)
		}
		if _, dup := out[dir]; dup {
			return nil, fmt.Errorf("direction %q bound twice", b.Key)
		}
		if b.Fiscal.Section == "" || b.Accounting.Section == "" {
			return nil, fmt.Errorf("direction %q is missing a section name", b.Key)
		}
		b.Direction = dir
		out[dir] = b
	}

	for key, dir := range directionKeys {
		if _, ok := out[dir]; !ok {
			return nil, fmt.Errorf("direction %q has no binding", key)
		}
	}
	return out, nil
}

func mustParseBindings(raw []byte) map[types.Direction]Binding {
	b, err := parseBindings(raw)
	if err != nil {
		panic(err)
	}
	return b
}

// BindingFor returns the static binding of a direction.
func BindingFor(d types.Direction) Binding {
	return bindings[d]
}

// Directions lists the directions in report order.
func Directions() []types.Direction {
	return []types.Direction{types.Inflows, types.Outflows}
}

// RequiredSections returns the four sections a complete workbook carries.
func RequiredSections() []string {
	var sections []string
	for _, d := range Directions() {
		b := BindingFor(d)
		sections = append(sections, b.Fiscal.Section, b.Accounting.Section)
	}
	return sections
}
