package main

import (
	"fmt"
	"io"
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/report"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
)

// printSectionCheck lists every required section with its status and returns
// the missing ones.
func printSectionCheck(w io.Writer, src workbook.Source) []string {
	missing := workbook.Missing(src, audit.RequiredSections())
	absent := make(map[string]bool, len(missing))
	for _, m := range missing {
		absent[m] = true
	}

	fmt.Fprintf(w, "Seções necessárias em %s:\n", src.Name)
	for _, section := range audit.RequiredSections() {
		mark := "✅"
		if absent[section] {
			mark = "❌"
		}
		fmt.Fprintf(w, "  %s %s\n", mark, section)
	}
	return missing
}

func printSummary(w io.Writer, r *types.Report) {
	fmt.Fprintf(w, "\nAuditoria %s concluída em %s\n", r.RunID, r.Elapsed.Round(time.Millisecond))
	for _, dir := range audit.Directions() {
		fmt.Fprintf(w, "  %s\n", report.Describe(r.Result(dir)))
	}
}
