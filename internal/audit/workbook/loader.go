package workbook

import (
	"fmt"
	"strings"

	"github.com/farxc/auditor-fiscal-contabil/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Loader turns one named section of a workbook into a table. It never fails:
// a missing or unreadable section yields an empty DataFrame.
type Loader interface {
	Load(src Source, section string) dataframe.DataFrame
}

type FileLoader struct {
	appLogger *logger.Logger
}

func NewFileLoader(appLogger *logger.Logger) *FileLoader {
	return &FileLoader{appLogger: appLogger}
}

func (l *FileLoader) Load(src Source, section string) (df dataframe.DataFrame) {
	const component = "SectionLoader"

	defer func() {
		if r := recover(); r != nil {
			l.appLogger.Error(component, "Workbook reader panicked: source=%s section=%s panic=%v", src.Name, section, r)
			df = dataframe.DataFrame{}
		}
	}()

	c, err := openContainer(src)
	if err != nil {
		l.appLogger.Error(component, "Failed to open workbook: source=%s format=%s error=%v", src.Name, src.Format, err)
		return dataframe.DataFrame{}
	}
	defer c.Close()

	rows, found, err := c.Rows(section)
	if !found {
		l.appLogger.Warn(component, "Section not found: source=%s section=%s", src.Name, section)
		return dataframe.DataFrame{}
	}
	if err != nil {
		l.appLogger.Error(component, "Failed to read section: source=%s section=%s error=%v", src.Name, section, err)
		return dataframe.DataFrame{}
	}

	df, err = toDataFrame(rows)
	if err != nil {
		l.appLogger.Warn(component, "Section has no data: source=%s section=%s reason=%v", src.Name, section, err)
		return dataframe.DataFrame{}
	}

	l.appLogger.Debug(component, "Section loaded: source=%s section=%s rows=%d cols=%d", src.Name, section, df.Nrow(), df.Ncol())
	return df
}

// Sections lists the section names of the workbook. Unlike Load it reports an
// unreadable container as an error, so hosts can tell "broken" from "clean".
func Sections(src Source) (names []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			names, err = nil, fmt.Errorf("failed to list sections: %v", r)
		}
	}()

	c, err := openContainer(src)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Sections(), nil
}

// Missing returns the required sections absent from the workbook, in the
// order given. An unreadable workbook is missing all of them.
func Missing(src Source, required []string) []string {
	names, err := Sections(src)
	if err != nil {
		return append([]string(nil), required...)
	}

	var missing []string
	for _, r := range required {
		if !containsString(names, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// toDataFrame builds a string-typed frame from a raw cell grid whose first
// non-blank row is the header.
func toDataFrame(rows [][]string) (dataframe.DataFrame, error) {
	for len(rows) > 0 && isBlankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("header only or empty")
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, width)
		copy(record, row)
		records[i] = record
	}
	dedupeHeader(records[0])

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

// dedupeHeader keeps the first occurrence of a repeated column name and
// suffixes the rest with ".1", ".2"... so lookups by name still find the first.
func dedupeHeader(header []string) {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			header[i] = fmt.Sprintf("%s.%d", name, n+1)
			continue
		}
		seen[name] = 0
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
