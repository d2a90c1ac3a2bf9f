package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
	"github.com/farxc/auditor-fiscal-contabil/internal/logger"
	"github.com/farxc/auditor-fiscal-contabil/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkbook(t *testing.T, blob []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apuracao.xlsx")
	require.NoError(t, os.WriteFile(path, blob, 0o644))
	return path
}

func TestRunWritesCSVReports(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	opts := options{
		file:   writeWorkbook(t, testutil.SampleWorkbook(t)),
		outDir: outDir,
		format: "csv",
	}

	var out bytes.Buffer
	rep, err := run(context.Background(), opts, &out, logger.Discard())
	require.NoError(t, err)
	require.NotNil(t, rep)

	text := out.String()
	assert.Contains(t, text, "✅ Auxiliar entradas")
	assert.NotContains(t, text, "❌")
	assert.Contains(t, text, "Entradas: 3 CFOPs com divergência, total R$ -132,50")
	assert.Contains(t, text, "Saídas: Nenhuma divergência encontrada")

	for _, name := range []string{"entradas_cfop.csv", "entradas_notas.csv", "saidas_cfop.csv", "saidas_notas.csv"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
}

func TestRunWritesWorkbook(t *testing.T) {
	outDir := t.TempDir()
	opts := options{
		file:     writeWorkbook(t, testutil.SampleWorkbook(t)),
		outDir:   outDir,
		format:   "xlsx",
		progress: true,
	}

	var out bytes.Buffer
	rep, err := run(context.Background(), opts, &out, logger.Discard())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "auditoria_"+rep.RunID.String()+".xlsx"))
}

func TestRunStopsOnMissingSections(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	opts := options{
		file:   writeWorkbook(t, testutil.SampleWorkbook(t, "Auxiliar Saídas")),
		outDir: outDir,
		format: "csv",
	}

	var out bytes.Buffer
	rep, err := run(context.Background(), opts, &out, logger.Discard())

	assert.ErrorIs(t, err, errMissingSections)
	assert.Nil(t, rep)
	assert.Contains(t, out.String(), "❌ Auxiliar Saídas")
	assert.NoDirExists(t, outDir)
}

func TestRunExplainsXLSB(t *testing.T) {
	opts := options{
		file:   writeWorkbook(t, testutil.Zip(t, map[string]string{"xl/workbook.bin": "binary"})),
		outDir: t.TempDir(),
		format: "csv",
	}

	var out bytes.Buffer
	rep, err := run(context.Background(), opts, &out, logger.Discard())

	assert.ErrorIs(t, err, workbook.ErrUnsupportedXLSB)
	assert.Nil(t, rep)
	assert.Contains(t, out.String(), "save the file as .xlsx")
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := run(context.Background(), options{file: "x.xlsx", format: "pdf"}, &bytes.Buffer{}, logger.Discard())
	assert.Error(t, err)

	_, err = run(context.Background(), options{file: filepath.Join(t.TempDir(), "nope.xlsx"), format: "none"}, &bytes.Buffer{}, logger.Discard())
	assert.Error(t, err)
}

func TestMemoryMonitor(t *testing.T) {
	m := NewMonitor()
	m.Start(time.Millisecond, logger.Discard())
	stats := m.Stop()
	assert.Positive(t, stats.PeakGoroutines)
}
