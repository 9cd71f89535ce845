package entity

import "github.com/shopspring/decimal"

// BatchSummary holds the aggregate statistics computed once per run.
// It is derived and read-only; order of aggregation does not affect it.
type BatchSummary struct {
	RecordCount       int
	TotalAmount       decimal.Decimal
	UniqueVendorCount int
}
