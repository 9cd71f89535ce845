package repository

import (
	"context"
	"log/slog"
	"time"

	"invoicerpa/internal/common"
	"invoicerpa/internal/entity"
)

// RunRepository records batch runs and their per-document outcomes.
type RunRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewRunRepository(db *DB, logger *slog.Logger) *RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunRepository{db: db, logger: logger}
}

// SaveRun inserts the run row and one row per document outcome, atomically.
func (r *RunRepository) SaveRun(ctx context.Context, run entity.ProcessingRun) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewAppError("DB_TX", "begin run-history transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, r.db.rebind(
		`INSERT INTO runs (id, started_at, finished_at, document_count, record_count, total_amount, unique_vendor_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`),
		run.ID.String(),
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.DocumentCount,
		run.Summary.RecordCount,
		run.Summary.TotalAmount.StringFixed(2),
		run.Summary.UniqueVendorCount,
	)
	if err != nil {
		return common.NewAppError("DB_INSERT", "insert run row", err)
	}

	for _, doc := range run.Documents {
		_, err = tx.ExecContext(ctx, r.db.rebind(
			`INSERT INTO run_documents (run_id, source_id, status, skip_reason, invoice_number, vendor, amount)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`),
			run.ID.String(),
			doc.SourceID,
			string(doc.Status),
			doc.SkipReason,
			doc.InvoiceNumber,
			doc.Vendor,
			doc.Amount,
		)
		if err != nil {
			return common.NewAppError("DB_INSERT", "insert run document row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return common.NewAppError("DB_TX", "commit run-history transaction", err)
	}
	r.logger.Info("run recorded",
		"run_id", run.ID.String(),
		"documents", run.DocumentCount,
		"records", run.Summary.RecordCount,
	)
	return nil
}

// CountRuns returns the number of persisted runs; used by health checks.
func (r *RunRepository) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, common.NewAppError("DB_QUERY", "count runs", err)
	}
	return n, nil
}
