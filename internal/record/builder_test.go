package record

import (
	"testing"

	"invoicerpa/internal/entity"
	"invoicerpa/internal/recognize"
)

func newBuilder() *Builder {
	return NewBuilder(recognize.NewRecognizer(nil, nil), nil)
}

func TestBuildAlwaysProducesOneRecord(t *testing.T) {
	b := newBuilder()
	doc := &entity.RawDocument{SourceID: "msg-1/a.pdf"}

	rec := b.Build(doc, "Invoice Number: 9\nVendor: Acme Corp\nTotal: $5.00\n")
	if rec.SourceID != "msg-1/a.pdf" {
		t.Errorf("SourceID = %q", rec.SourceID)
	}
	if !rec.InvoiceNumber.Found || rec.InvoiceNumber.Value != "9" {
		t.Errorf("invoice_number = %+v", rec.InvoiceNumber)
	}
	if !rec.Vendor.Found || rec.Vendor.Value != "Acme Corp" {
		t.Errorf("vendor = %+v", rec.Vendor)
	}
	if !rec.Amount.Found || rec.Amount.Value != "5.00" {
		t.Errorf("amount = %+v", rec.Amount)
	}
	if rec.NeedsReview {
		t.Error("NeedsReview set despite identifying fields present")
	}
}

func TestBuildWithNothingRecognizedStillBuilds(t *testing.T) {
	b := newBuilder()
	doc := &entity.RawDocument{SourceID: "msg-2/b.pdf"}

	// Short lines defeat even the vendor heuristic.
	rec := b.Build(doc, "a\nb\nc\n")
	if rec.InvoiceNumber.Found || rec.Vendor.Found || rec.InvoiceDate.Found ||
		rec.Amount.Found || rec.DueDate.Found || rec.Status.Found {
		t.Errorf("expected all fields missing, got %+v", rec)
	}
	if !rec.NeedsReview {
		t.Error("NeedsReview not set for an empty record")
	}
}
