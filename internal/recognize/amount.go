package recognize

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyCutset holds symbols commonly prefixed to invoice totals.
const currencyCutset = "$€£¥₹ \t"

// NormalizeAmount strips currency symbols and thousands separators and, when
// the remainder parses as a decimal, renders it as a fixed-point string with
// two decimal places. Unparsable spans are returned as captured:
// present-but-malformed data is preserved, and the aggregator sums it as
// zero.
func NormalizeAmount(raw string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	s := strings.Trim(raw, currencyCutset)
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		logger.Warn("amount not parseable, keeping raw span", "raw", raw)
		return strings.TrimSpace(raw)
	}
	return d.StringFixed(2)
}

// ParseAmount returns the summable value of an amount field. The second
// return is false when the span does not parse; such amounts contribute zero
// to the batch total.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(strings.Trim(s, currencyCutset), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
