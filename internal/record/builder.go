package record

import (
	"log/slog"

	"invoicerpa/constants"
	"invoicerpa/internal/entity"
	"invoicerpa/internal/recognize"
)

// Builder assembles an InvoiceRecord from extracted text. It never fails:
// every document that yielded readable text produces exactly one record,
// with any subset of fields missing.
type Builder struct {
	recognizer *recognize.Recognizer
	logger     *slog.Logger
}

func NewBuilder(recognizer *recognize.Recognizer, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{recognizer: recognizer, logger: logger}
}

// Build runs the recognizer once per field kind and assembles the record.
func (b *Builder) Build(doc *entity.RawDocument, text string) entity.InvoiceRecord {
	rec := entity.InvoiceRecord{SourceID: doc.SourceID}
	for _, kind := range constants.AllFields() {
		rec.SetField(kind, b.recognizer.Recognize(text, kind))
	}
	// Review flag, not a rejection: a record with nothing identifying is
	// still preserved.
	rec.NeedsReview = !rec.InvoiceNumber.Found && !rec.Vendor.Found && !rec.Amount.Found

	b.logger.Debug("record built",
		"source_id", doc.SourceID,
		"invoice_number", rec.InvoiceNumber.Value,
		"vendor", rec.Vendor.Value,
		"amount", rec.Amount.Value,
		"needs_review", rec.NeedsReview,
	)
	return rec
}
