package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"invoicerpa/constants"
	"invoicerpa/internal/aggregate"
	"invoicerpa/internal/entity"
	"invoicerpa/internal/extract"
	"invoicerpa/internal/record"
)

// Skip is one excluded document with its reason. Skips are diagnostics, not
// errors: they are collected alongside the records and the batch continues.
type Skip struct {
	SourceID string
	Reason   extract.FailureReason
	Detail   string
}

// Outcome is the explicit per-document result: exactly one of Record or
// Skip is set.
type Outcome struct {
	SourceID string
	Record   *entity.InvoiceRecord
	Skip     *Skip
}

// BatchResult carries everything one run produced.
type BatchResult struct {
	Outcomes []Outcome
	Records  []entity.InvoiceRecord
	Skips    []Skip
	Summary  entity.BatchSummary
}

// Pipeline drives one batch: extract, recognize, build, aggregate. Nothing
// inside it is permitted to abort the batch; per-document failures become
// skips.
type Pipeline struct {
	Extractor  extract.TextExtractor
	Builder    *record.Builder
	Aggregator *aggregate.Aggregator
	Log        *slog.Logger
}

func New(tx extract.TextExtractor, b *record.Builder, agg *aggregate.Aggregator, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Extractor: tx, Builder: b, Aggregator: agg, Log: log}
}

// Run processes documents one at a time, in delivery order. Every document
// that yields readable text produces exactly one record; extraction failures
// are logged and collected as skips. An empty input yields an empty result
// with a zero summary.
func (p *Pipeline) Run(ctx context.Context, docs []entity.RawDocument) BatchResult {
	var res BatchResult
	for i := range docs {
		doc := &docs[i]

		txt, err := p.Extractor.Extract(ctx, doc)
		if err != nil {
			reason := extract.ReasonCorrupt
			var exErr *extract.ExtractionError
			if errors.As(err, &exErr) {
				reason = exErr.Reason
			}
			skip := Skip{SourceID: doc.SourceID, Reason: reason, Detail: err.Error()}
			p.Log.Warn("document skipped",
				"source_id", doc.SourceID, "reason", string(reason))
			res.Skips = append(res.Skips, skip)
			res.Outcomes = append(res.Outcomes, Outcome{SourceID: doc.SourceID, Skip: &skip})
			continue
		}

		rec := p.Builder.Build(doc, txt.Text)
		res.Records = append(res.Records, rec)
		out := rec
		res.Outcomes = append(res.Outcomes, Outcome{SourceID: doc.SourceID, Record: &out})
	}

	res.Summary = p.Aggregator.Aggregate(res.Records)
	p.Log.Info("batch complete",
		"documents", len(docs),
		"records", len(res.Records),
		"skipped", len(res.Skips),
		"total_amount", res.Summary.TotalAmount.StringFixed(2),
		"unique_vendors", res.Summary.UniqueVendorCount,
	)
	return res
}

// RunEntity converts a finished batch into its persistable form.
func RunEntity(run entity.ProcessingRun, res BatchResult) entity.ProcessingRun {
	run.DocumentCount = len(res.Outcomes)
	run.Summary = res.Summary
	run.Documents = make([]entity.RunDocument, 0, len(res.Outcomes))
	for _, out := range res.Outcomes {
		doc := entity.RunDocument{SourceID: out.SourceID}
		if out.Skip != nil {
			doc.Status = constants.RunDocSkipped
			doc.SkipReason = string(out.Skip.Reason)
		} else {
			doc.Status = constants.RunDocOK
			doc.InvoiceNumber = out.Record.InvoiceNumber.Value
			doc.Vendor = out.Record.Vendor.Value
			doc.Amount = out.Record.Amount.Value
		}
		run.Documents = append(run.Documents, doc)
	}
	return run
}
