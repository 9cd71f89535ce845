package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"invoicerpa/internal/aggregate"
	"invoicerpa/internal/common"
	"invoicerpa/internal/entity"
	"invoicerpa/internal/extract"
	"invoicerpa/internal/ingest"
	"invoicerpa/internal/mailbox"
	"invoicerpa/internal/pipeline"
	"invoicerpa/internal/recognize"
	"invoicerpa/internal/record"
	"invoicerpa/internal/report"
	"invoicerpa/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "process PDFs from a local directory instead of the mailbox")
		out      = flag.String("out", "", "output XLSX file path (defaults to OUTPUT_DIR with a timestamped name)")
		daysBack = flag.Int("days-back", 0, "override mailbox search window in days")
		rules    = flag.String("rules", "", "JSON rule-table overlay file")
		inmem    = flag.Bool("inmem", false, "record run history in an in-memory SQLite database")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	// Recognition rule table
	table := recognize.DefaultTable()
	rulesPath := *rules
	if rulesPath == "" {
		rulesPath = cfg.Rules.Path
	}
	if rulesPath != "" {
		t, err := recognize.LoadTableFile(rulesPath)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		table = t
		logger.Info("rule table loaded", "path", rulesPath)
	}

	// Wire the pipeline
	recognizer := recognize.NewRecognizer(table, logger)
	builder := record.NewBuilder(recognizer, logger)
	extractor := extract.NewPDFExtractor(logger)
	aggregator := aggregate.NewAggregator(logger)
	pipe := pipeline.New(extractor, builder, aggregator, logger)

	// Collect documents: local directory or mailbox
	var docs []entity.RawDocument
	if *dir != "" {
		loaded, _, err := ingest.LoadDirectory(*dir, true, logger)
		if err != nil {
			logger.Error("failed to load directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
		docs = loaded
	} else {
		if err := cfg.ValidateMailbox(); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		mbCfg := mailbox.Config{
			Addr:     cfg.Mailbox.Addr,
			Username: cfg.Mailbox.Username,
			Password: cfg.Mailbox.Password,
			Folder:   cfg.Mailbox.Folder,
			DaysBack: cfg.Mailbox.DaysBack,
			MarkSeen: cfg.Mailbox.MarkSeen,
		}
		if *daysBack > 0 {
			mbCfg.DaysBack = *daysBack
		}
		mb, err := mailbox.Dial(mbCfg, logger)
		if err != nil {
			logger.Error("failed to connect to mailbox", "error", err)
			os.Exit(1)
		}
		docs, err = mb.FetchInvoiceDocuments(ctx)
		mb.Close()
		if err != nil {
			logger.Error("failed to download invoices", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("documents collected", "count", len(docs))

	// Process the batch; a report is produced even for zero documents.
	startedAt := time.Now().UTC()
	result := pipe.Run(ctx, docs)
	finishedAt := time.Now().UTC()

	rep := report.Assemble(result.Records, result.Summary)
	xlsxBytes, err := report.NewXLSXWriter(logger).Write(rep)
	if err != nil {
		logger.Error("failed to render report", "error", err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		name := fmt.Sprintf("invoice_report_%s.xlsx", startedAt.Format("20060102_150405"))
		outPath = filepath.Join(cfg.Report.OutputDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, xlsxBytes, 0o644); err != nil {
		logger.Error("failed to write report file", "path", outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("report written", "path", outPath)

	// Optional run history
	if *inmem || cfg.Database.DSN != "" {
		dbCfg := repository.Config{DSN: cfg.Database.DSN, DialTimeout: cfg.Database.DialTimeout}
		if *inmem {
			dbCfg.DSN = ""
		}
		db, err := repository.Open(ctx, dbCfg, logger)
		if err != nil {
			logger.Error("run history unavailable, continuing without it", "error", err)
		} else {
			run := pipeline.RunEntity(entity.ProcessingRun{
				ID:         uuid.New(),
				StartedAt:  startedAt,
				FinishedAt: finishedAt,
			}, result)
			if err := repository.NewRunRepository(db, logger).SaveRun(ctx, run); err != nil {
				logger.Error("failed to record run", "error", err)
			}
			if err := db.Close(); err != nil {
				logger.Warn("failed to close run-history database", "error", err)
			}
		}
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents: %d\n", len(docs))
	fmt.Printf("- Records: %d\n", result.Summary.RecordCount)
	fmt.Printf("- Skipped: %d\n", len(result.Skips))
	fmt.Printf("- Total amount: %s\n", result.Summary.TotalAmount.StringFixed(2))
	fmt.Printf("- Unique vendors: %d\n", result.Summary.UniqueVendorCount)
	fmt.Printf("- Output: %s\n", outPath)
}
