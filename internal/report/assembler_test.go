package report

import (
	"reflect"
	"testing"

	"invoicerpa/internal/entity"
)

func TestAssembleColumnOrderAndEmptyCells(t *testing.T) {
	records := []entity.InvoiceRecord{
		{
			InvoiceNumber: entity.FoundValue("INV-1"),
			Vendor:        entity.FoundValue("Acme Corp"),
			InvoiceDate:   entity.FoundValue("2024-03-01"),
			Amount:        entity.FoundValue("1234.50"),
			DueDate:       entity.FoundValue("2024-03-31"),
			Status:        entity.FoundValue("Unpaid"),
		},
		{
			// Partial record: missing fields must render as empty cells.
			InvoiceNumber: entity.FoundValue("4521"),
			Amount:        entity.FoundValue("250.00"),
		},
	}
	rep := Assemble(records, entity.BatchSummary{RecordCount: 2})

	wantHeaders := []string{"Invoice Number", "Vendor", "Date", "Amount", "Due Date", "Status"}
	if !reflect.DeepEqual(rep.Headers, wantHeaders) {
		t.Errorf("Headers = %v, want %v", rep.Headers, wantHeaders)
	}

	wantRows := [][]string{
		{"INV-1", "Acme Corp", "2024-03-01", "1234.50", "2024-03-31", "Unpaid"},
		{"4521", "", "", "250.00", "", ""},
	}
	if !reflect.DeepEqual(rep.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", rep.Rows, wantRows)
	}
	if rep.Summary.RecordCount != 2 {
		t.Errorf("Summary.RecordCount = %d", rep.Summary.RecordCount)
	}
}

func TestAssembleEmptyBatch(t *testing.T) {
	rep := Assemble(nil, entity.BatchSummary{})
	if len(rep.Rows) != 0 {
		t.Errorf("Rows = %v, want none", rep.Rows)
	}
	if len(rep.Headers) != 6 {
		t.Errorf("Headers = %v, want 6 columns", rep.Headers)
	}
}

func TestAssemblePreservesRecordOrder(t *testing.T) {
	records := []entity.InvoiceRecord{
		{InvoiceNumber: entity.FoundValue("first")},
		{InvoiceNumber: entity.FoundValue("second")},
		{InvoiceNumber: entity.FoundValue("third")},
	}
	rep := Assemble(records, entity.BatchSummary{RecordCount: 3})
	for i, want := range []string{"first", "second", "third"} {
		if rep.Rows[i][0] != want {
			t.Errorf("row %d invoice number = %q, want %q", i, rep.Rows[i][0], want)
		}
	}
}
