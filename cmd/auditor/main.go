package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/farxc/auditor-fiscal-contabil/internal/audit"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/report"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/types"
	"github.com/farxc/auditor-fiscal-contabil/internal/audit/workbook"
	"github.com/farxc/auditor-fiscal-contabil/internal/db"
	"github.com/farxc/auditor-fiscal-contabil/internal/env"
	"github.com/farxc/auditor-fiscal-contabil/internal/logger"
	"github.com/farxc/auditor-fiscal-contabil/internal/store"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
)

type options struct {
	file     string
	outDir   string
	format   string
	logLevel string
	record   bool
	progress bool
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

var errMissingSections = errors.New("workbook is missing required sections")

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var opts options
	flag.StringVar(&opts.file, "file", "", "Workbook to audit (xlsx, xls or zip of csv sections)")
	flag.StringVar(&opts.outDir, "out", env.GetString("AUDIT_OUT_DIR", "output"), "Directory for the report files")
	flag.StringVar(&opts.format, "format", "csv", "Report format: csv, xlsx or none")
	flag.StringVar(&opts.logLevel, "loglevel", env.GetString("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.BoolVar(&opts.record, "record", env.GetBool("AUDIT_RECORD", false), "Record the run in the audit history (needs DB_ADDR)")
	flag.Parse()
	opts.progress = true

	appLogger := logger.New(logger.ParseLevel(opts.logLevel))

	if opts.file == "" {
		fmt.Fprintln(os.Stderr, "usage: auditor -file <workbook> [-out dir] [-format csv|xlsx|none] [-record]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	monitor := NewMonitor()
	monitor.Start(500*time.Millisecond, appLogger)

	rep, err := run(ctx, opts, os.Stdout, appLogger)
	stats := monitor.Stop()
	appLogger.Info("Main", "Peak usage: goroutines=%d memoryMB=%d", stats.PeakGoroutines, stats.PeakMemoryMB)

	if err != nil {
		if errors.Is(err, errMissingSections) {
			os.Exit(1)
		}
		appLogger.Fatal("Main", "Audit failed: error=%v", err)
	}

	if opts.record {
		recordRun(rep, appLogger)
	}
}

// run checks the workbook, audits it and writes the reports. It returns
// errMissingSections without running when a required section is absent.
func run(ctx context.Context, opts options, out io.Writer, appLogger *logger.Logger) (*types.Report, error) {
	const component = "AuditCLI"

	switch opts.format {
	case "csv", "xlsx", "none":
	default:
		return nil, fmt.Errorf("invalid format %q", opts.format)
	}

	blob, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	src := workbook.NewSource(filepath.Base(opts.file), blob)
	appLogger.Info(component, "Workbook loaded: file=%s format=%s sizeBytes=%d sha256=%s", opts.file, src.Format, src.Size(), src.Digest)

	if _, err := workbook.Sections(src); err != nil {
		fmt.Fprintf(out, "Não foi possível ler %s: %v\n", src.Name, err)
		return nil, fmt.Errorf("unreadable workbook: %w", err)
	}

	if missing := printSectionCheck(out, src); len(missing) > 0 {
		fmt.Fprintf(out, "Auditoria não iniciada: %d seção(ões) ausente(s).\n", len(missing))
		return nil, errMissingSections
	}

	auditor := audit.NewAuditor(workbook.NewCachedLoader(workbook.NewFileLoader(appLogger)), appLogger)

	var bar *progressbar.ProgressBar
	if opts.progress {
		bar = progressbar.NewOptions(len(audit.Directions()),
			progressbar.OptionSetWriter(out),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription("Conciliando ICMS..."),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(out)
			}),
		)
		auditor.OnDirectionDone = func(res types.DirectionResult) {
			if err := bar.Add(1); err != nil {
				appLogger.Warn(component, "Failed to update progress bar: error=%v", err)
			}
		}
	}

	rep, err := auditor.Run(ctx, src)
	if err != nil {
		return nil, err
	}
	printSummary(out, rep)

	paths, err := writeReports(opts, rep)
	if err != nil {
		return rep, err
	}
	for _, p := range paths {
		fmt.Fprintf(out, "  → %s\n", p)
	}
	return rep, nil
}

func writeReports(opts options, rep *types.Report) ([]string, error) {
	switch opts.format {
	case "csv":
		return report.WriteCSV(opts.outDir, rep)
	case "xlsx":
		if err := os.MkdirAll(opts.outDir, os.ModePerm); err != nil {
			return nil, err
		}
		path := filepath.Join(opts.outDir, "auditoria_"+rep.RunID.String()+".xlsx")
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := report.WriteWorkbook(f, rep); err != nil {
			return nil, err
		}
		return []string{path}, f.Close()
	}
	return nil, nil
}

func recordRun(rep *types.Report, appLogger *logger.Logger) {
	const component = "AuditHistory"

	cfg := dbConfig{
		addr:         env.GetString("DB_ADDR", ""),
		maxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 5),
		maxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 5),
		maxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
	}
	if cfg.addr == "" {
		appLogger.Warn(component, "Skipping history: DB_ADDR is not set")
		return
	}

	conn, err := db.New(cfg.addr, cfg.maxOpenConns, cfg.maxIdleConns, cfg.maxIdleTime)
	if err != nil {
		appLogger.Error(component, "Failed to connect: error=%v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.EnsureSchema(ctx, conn); err != nil {
		appLogger.Error(component, "Failed to prepare schema: error=%v", err)
		return
	}

	storage := store.NewStorage(conn)
	if err := storage.AuditRuns.InsertAuditRun(ctx, store.NewAuditRun(rep, store.TriggerTypeCLI)); err != nil {
		appLogger.Error(component, "Failed to record audit run: runID=%s error=%v", rep.RunID, err)
		return
	}
	appLogger.Info(component, "Audit run recorded: runID=%s", rep.RunID)
}
