package aggregate

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"invoicerpa/internal/entity"
	"invoicerpa/internal/recognize"
)

// Aggregator folds a record sequence into a BatchSummary. The fold is
// order-independent: sums commute and vendor uniqueness is set-based, so any
// permutation of the same records yields the same summary.
type Aggregator struct {
	logger *slog.Logger
}

func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate never fails: missing and unparsable amounts contribute zero, and
// an empty input yields the zero summary.
func (a *Aggregator) Aggregate(records []entity.InvoiceRecord) entity.BatchSummary {
	total := decimal.Zero
	vendors := make(map[string]struct{})

	for i := range records {
		rec := &records[i]
		if rec.Amount.Found {
			if d, ok := recognize.ParseAmount(rec.Amount.Value); ok {
				total = total.Add(d)
			} else {
				a.logger.Warn("amount not summable, counting as zero",
					"source_id", rec.SourceID, "amount", rec.Amount.Value)
			}
		}
		if rec.Vendor.Found {
			if key := normalizeVendor(rec.Vendor.Value); key != "" {
				vendors[key] = struct{}{}
			}
		}
	}

	return entity.BatchSummary{
		RecordCount:       len(records),
		TotalAmount:       total,
		UniqueVendorCount: len(vendors),
	}
}

// normalizeVendor trims, case-folds and collapses internal runs of
// whitespace so vendor strings differing only in case or spacing compare
// equal.
func normalizeVendor(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
