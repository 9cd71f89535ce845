package report

import (
	"invoicerpa/constants"
	"invoicerpa/internal/entity"
)

// Report is the assembled two-sheet report value. Rendering it to a file is
// the persistence collaborator's job; this type carries no styling.
type Report struct {
	Headers []string
	Rows    [][]string // one row per record, in build order
	Summary entity.BatchSummary
}

// Assemble is a pure transformation: column ordering and the fixed summary
// layout only, no recognition logic. Missing fields become empty cells, not
// placeholder strings, so downstream spreadsheet formulas stay simple.
func Assemble(records []entity.InvoiceRecord, summary entity.BatchSummary) Report {
	kinds := constants.AllFields()
	rows := make([][]string, 0, len(records))
	for i := range records {
		rec := &records[i]
		row := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			row = append(row, rec.Field(kind).Value)
		}
		rows = append(rows, row)
	}
	headers := make([]string, len(constants.ReportHeaders))
	copy(headers, constants.ReportHeaders)
	return Report{Headers: headers, Rows: rows, Summary: summary}
}
