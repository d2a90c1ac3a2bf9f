package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/go-gota/gota/dataframe"
)

var directionSlugs = map[types.Direction]string{
	types.Inflows:  "entradas",
	types.Outflows: "saidas",
}

// Table is one rendered result table and the file/sheet stem it goes under.
type Table struct {
	Name  string
	Frame dataframe.DataFrame
}

// Tables renders the four result tables of a report in a fixed order.
func Tables(r *types.Report) []Table {
	var tables []Table
	for _, dir := range []types.Direction{types.Inflows, types.Outflows} {
		res := r.Result(dir)
		slug := directionSlugs[dir]
		tables = append(tables,
			Table{Name: slug + "_cfop", Frame: DiscrepancyFrame(res.Discrepancies)},
			Table{Name: slug + "_notas", Frame: InvoiceFrame(res.InvoiceDiscrepancies)},
		)
	}
	return tables
}

// WriteCSV writes one CSV per table into dir and returns the paths written.
func WriteCSV(dir string, r *types.Report) ([]string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	var paths []string
	for _, t := range Tables(r) {
		path := filepath.Join(dir, t.Name+".csv")
		if err := writeFrame(path, t.Frame); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFrame(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
