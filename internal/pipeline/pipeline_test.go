package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"invoicerpa/constants"
	"invoicerpa/internal/aggregate"
	"invoicerpa/internal/entity"
	"invoicerpa/internal/extract"
	"invoicerpa/internal/recognize"
	"invoicerpa/internal/record"
)

// fakeExtractor serves canned text per source and fails configured sources
// with the requested reason.
type fakeExtractor struct {
	texts map[string]string
	fail  map[string]extract.FailureReason
}

func (f *fakeExtractor) Extract(_ context.Context, doc *entity.RawDocument) (extract.TextExtractionResult, error) {
	if reason, ok := f.fail[doc.SourceID]; ok {
		return extract.TextExtractionResult{}, &extract.ExtractionError{Reason: reason}
	}
	return extract.TextExtractionResult{Text: f.texts[doc.SourceID], Pages: 1, Method: "fake"}, nil
}

func newPipeline(fx *fakeExtractor) *Pipeline {
	builder := record.NewBuilder(recognize.NewRecognizer(nil, nil), nil)
	return New(fx, builder, aggregate.NewAggregator(nil), nil)
}

func docs(sourceIDs ...string) []entity.RawDocument {
	out := make([]entity.RawDocument, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		out = append(out, entity.RawDocument{ID: uuid.New(), SourceID: id})
	}
	return out
}

func TestRunSkipsFailedDocumentsAndContinues(t *testing.T) {
	fx := &fakeExtractor{
		texts: map[string]string{
			"a.pdf": "Invoice Number: INV-1\nVendor: Acme Corp\nAmount Due: $100.00\n",
			"c.pdf": "Invoice No. 4521\nVendor: Globex\nAmount Due: $250.00\n",
		},
		fail: map[string]extract.FailureReason{
			"b.pdf": extract.ReasonNoTextLayer,
		},
	}
	res := newPipeline(fx).Run(context.Background(), docs("a.pdf", "b.pdf", "c.pdf"))

	require.Len(t, res.Records, 2)
	require.Len(t, res.Skips, 1)
	require.Len(t, res.Outcomes, 3)

	require.Equal(t, "b.pdf", res.Skips[0].SourceID)
	require.Equal(t, extract.ReasonNoTextLayer, res.Skips[0].Reason)

	// Outcomes keep delivery order and are exclusive: record or skip.
	require.NotNil(t, res.Outcomes[0].Record)
	require.Nil(t, res.Outcomes[0].Skip)
	require.Nil(t, res.Outcomes[1].Record)
	require.NotNil(t, res.Outcomes[1].Skip)
	require.NotNil(t, res.Outcomes[2].Record)

	require.Equal(t, 2, res.Summary.RecordCount)
	require.True(t, res.Summary.TotalAmount.Equal(decimal.RequireFromString("350.00")),
		"total = %s", res.Summary.TotalAmount)
	require.Equal(t, 2, res.Summary.UniqueVendorCount)
}

func TestRunEmptyBatch(t *testing.T) {
	res := newPipeline(&fakeExtractor{}).Run(context.Background(), nil)

	require.Empty(t, res.Records)
	require.Empty(t, res.Skips)
	require.Equal(t, 0, res.Summary.RecordCount)
	require.True(t, res.Summary.TotalAmount.IsZero())
	require.Equal(t, 0, res.Summary.UniqueVendorCount)
}

func TestRunUnreadableDocumentYieldsNoRecord(t *testing.T) {
	fx := &fakeExtractor{fail: map[string]extract.FailureReason{
		"broken.pdf": extract.ReasonCorrupt,
	}}
	res := newPipeline(fx).Run(context.Background(), docs("broken.pdf"))

	require.Empty(t, res.Records)
	require.Len(t, res.Skips, 1)
	require.Equal(t, extract.ReasonCorrupt, res.Skips[0].Reason)
}

func TestRunEntityMapsOutcomes(t *testing.T) {
	fx := &fakeExtractor{
		texts: map[string]string{
			"a.pdf": "Invoice Number: INV-1\nVendor: Acme Corp\nAmount Due: $100.00\n",
		},
		fail: map[string]extract.FailureReason{
			"b.pdf": extract.ReasonNoTextLayer,
		},
	}
	res := newPipeline(fx).Run(context.Background(), docs("a.pdf", "b.pdf"))

	run := RunEntity(entity.ProcessingRun{
		ID:        uuid.New(),
		StartedAt: time.Now().Add(-time.Second),
	}, res)

	require.Equal(t, 2, run.DocumentCount)
	require.Len(t, run.Documents, 2)

	require.Equal(t, constants.RunDocOK, run.Documents[0].Status)
	require.Equal(t, "INV-1", run.Documents[0].InvoiceNumber)
	require.Equal(t, "Acme Corp", run.Documents[0].Vendor)
	require.Equal(t, "100.00", run.Documents[0].Amount)

	require.Equal(t, constants.RunDocSkipped, run.Documents[1].Status)
	require.Equal(t, string(extract.ReasonNoTextLayer), run.Documents[1].SkipReason)
}
