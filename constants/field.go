package constants

// FieldKind identifies one logical invoice attribute recognized from text.
type FieldKind string

const (
	FieldInvoiceNumber FieldKind = "invoice_number"
	FieldVendor        FieldKind = "vendor"
	FieldInvoiceDate   FieldKind = "invoice_date"
	FieldAmount        FieldKind = "amount"
	FieldDueDate       FieldKind = "due_date"
	FieldStatus        FieldKind = "status"
)

var allFields = []FieldKind{
	FieldInvoiceNumber,
	FieldVendor,
	FieldInvoiceDate,
	FieldAmount,
	FieldDueDate,
	FieldStatus,
}

// AllFields returns the recognized field kinds in report column order.
func AllFields() []FieldKind {
	out := make([]FieldKind, len(allFields))
	copy(out, allFields)
	return out
}

// ReportHeaders holds the Invoice_Data sheet columns, in the fixed order the
// report contract requires. Index i is the header for AllFields()[i].
var ReportHeaders = []string{
	"Invoice Number",
	"Vendor",
	"Date",
	"Amount",
	"Due Date",
	"Status",
}
