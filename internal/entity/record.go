package entity

import "invoicerpa/constants"

// FieldValue is a recognized-or-missing value for one invoice attribute.
// A non-match is an expected outcome, not an error.
type FieldValue struct {
	Value string
	Found bool
}

// FoundValue wraps a recognized span.
func FoundValue(v string) FieldValue {
	return FieldValue{Value: v, Found: true}
}

// Missing is the absent FieldValue. It renders as an empty report cell.
var Missing = FieldValue{}

// InvoiceRecord is one row of the report plus the originating document's
// source id (kept for traceability, never shown in the report). A record
// exists for every document that yielded readable text, even when every
// field is missing.
type InvoiceRecord struct {
	InvoiceNumber FieldValue
	Vendor        FieldValue
	InvoiceDate   FieldValue
	Amount        FieldValue
	DueDate       FieldValue
	Status        FieldValue

	SourceID    string
	NeedsReview bool
}

// Field returns the slot for the given kind.
func (r *InvoiceRecord) Field(kind constants.FieldKind) FieldValue {
	switch kind {
	case constants.FieldInvoiceNumber:
		return r.InvoiceNumber
	case constants.FieldVendor:
		return r.Vendor
	case constants.FieldInvoiceDate:
		return r.InvoiceDate
	case constants.FieldAmount:
		return r.Amount
	case constants.FieldDueDate:
		return r.DueDate
	case constants.FieldStatus:
		return r.Status
	}
	return Missing
}

// SetField stores a value into the slot for the given kind.
func (r *InvoiceRecord) SetField(kind constants.FieldKind, v FieldValue) {
	switch kind {
	case constants.FieldInvoiceNumber:
		r.InvoiceNumber = v
	case constants.FieldVendor:
		r.Vendor = v
	case constants.FieldInvoiceDate:
		r.InvoiceDate = v
	case constants.FieldAmount:
		r.Amount = v
	case constants.FieldDueDate:
		r.DueDate = v
	case constants.FieldStatus:
		r.Status = v
	}
}
