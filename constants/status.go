package constants

import "strings"

// PaymentStatus is the canonical payment state shown in the report.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "Paid"
	StatusUnpaid PaymentStatus = "Unpaid"
)

// CanonicalizeStatus maps free-form captured status text onto the canonical
// Paid/Unpaid labels. Anything else is kept as captured, trimmed.
// "unpaid" must be checked before "paid": the former contains the latter.
func CanonicalizeStatus(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	switch {
	case strings.Contains(normalized, "unpaid"):
		return string(StatusUnpaid)
	case strings.Contains(normalized, "paid"):
		return string(StatusPaid)
	}
	return strings.TrimSpace(input)
}

// RunDocStatus is the per-document outcome stored in run history.
type RunDocStatus string

const (
	RunDocOK      RunDocStatus = "OK"
	RunDocSkipped RunDocStatus = "SKIPPED"
)
