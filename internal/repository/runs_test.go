package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"invoicerpa/constants"
	"invoicerpa/internal/entity"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(context.Background(), Config{DialTimeout: time.Second}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveRunAndCount(t *testing.T) {
	db := testDB(t)
	repo := NewRunRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	run := entity.ProcessingRun{
		ID:            uuid.New(),
		StartedAt:     time.Now().Add(-2 * time.Second),
		FinishedAt:    time.Now(),
		DocumentCount: 2,
		Summary: entity.BatchSummary{
			RecordCount:       1,
			TotalAmount:       decimal.RequireFromString("250.00"),
			UniqueVendorCount: 1,
		},
		Documents: []entity.RunDocument{
			{
				SourceID:      "mail-1/a.pdf",
				Status:        constants.RunDocOK,
				InvoiceNumber: "4521",
				Vendor:        "Acme Corp",
				Amount:        "250.00",
			},
			{
				SourceID:   "mail-1/b.pdf",
				Status:     constants.RunDocSkipped,
				SkipReason: "no_text_layer",
			},
		},
	}
	require.NoError(t, repo.SaveRun(ctx, run))

	n, err := repo.CountRuns(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	var total string
	var docCount int
	err = db.QueryRowContext(ctx,
		db.rebind(`SELECT total_amount, document_count FROM runs WHERE id = $1`),
		run.ID.String(),
	).Scan(&total, &docCount)
	require.NoError(t, err)
	require.Equal(t, "250.00", total)
	require.Equal(t, 2, docCount)

	var skipped int
	err = db.QueryRowContext(ctx,
		db.rebind(`SELECT COUNT(*) FROM run_documents WHERE run_id = $1 AND status = $2`),
		run.ID.String(), string(constants.RunDocSkipped),
	).Scan(&skipped)
	require.NoError(t, err)
	require.Equal(t, 1, skipped)
}

func TestCountRunsEmpty(t *testing.T) {
	db := testDB(t)
	repo := NewRunRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	n, err := repo.CountRuns(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestRebind(t *testing.T) {
	db := &DB{Dialect: "sqlite"}
	got := db.rebind(`INSERT INTO runs (id, started_at) VALUES ($1, $2)`)
	require.Equal(t, `INSERT INTO runs (id, started_at) VALUES (?, ?)`, got)

	pg := &DB{Dialect: "pgx"}
	q := `SELECT 1 WHERE x = $1`
	require.Equal(t, q, pg.rebind(q))
}
