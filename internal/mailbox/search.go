package mailbox

import "strings"

// invoiceKeywords are matched against lowercased subject lines. Subject
// keywords are the primary signal; a PDF attachment is the secondary one, in
// case the subject is generic.
var invoiceKeywords = []string{
	"invoice", "bill", "receipt", "statement", "payment",
	"inv-", "invoice-", "bill-", "receipt-", "payment-",
	"invoice #", "bill #", "receipt #", "statement #",
	"invoice number", "bill number", "receipt number",
	"monthly invoice", "monthly bill", "monthly statement",
	"quarterly invoice", "quarterly bill",
	"service invoice", "service bill",
	"consulting invoice", "software invoice",
	"maintenance invoice", "support invoice",
}

// LooksLikeInvoice reports whether a subject line suggests an invoice email.
func LooksLikeInvoice(subject string) bool {
	lower := strings.ToLower(subject)
	for _, kw := range invoiceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
