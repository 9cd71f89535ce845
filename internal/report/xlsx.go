package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet    = "Invoice_Data"
	summarySheet = "Summary"
)

// XLSXWriter renders a Report into the two-sheet workbook contract:
// "Invoice_Data" with one row per record and "Summary" with the three
// labeled metrics.
type XLSXWriter struct {
	logger *slog.Logger
}

func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger}
}

// Write returns the workbook as bytes. A report is produced even when Rows
// is empty: the data sheet then carries only headers and the summary zeros.
func (w *XLSXWriter) Write(rep Report) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()

	if _, err := f.NewSheet(dataSheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	for i, h := range rep.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(dataSheet, cell, h)
	}
	row := 2
	for _, r := range rep.Rows {
		for col, v := range r {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(dataSheet, cell, v)
		}
		row++
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	_ = f.SetCellValue(summarySheet, "A1", "Metric")
	_ = f.SetCellValue(summarySheet, "B1", "Value")
	_ = f.SetCellValue(summarySheet, "A2", "Total Invoices")
	_ = f.SetCellValue(summarySheet, "B2", rep.Summary.RecordCount)
	_ = f.SetCellValue(summarySheet, "A3", "Total Amount")
	_ = f.SetCellValue(summarySheet, "B3", rep.Summary.TotalAmount.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A4", "Unique Vendors")
	_ = f.SetCellValue(summarySheet, "B4", rep.Summary.UniqueVendorCount)

	_ = f.DeleteSheet("Sheet1")
	if idx, _ := f.GetSheetIndex(dataSheet); idx != -1 {
		f.SetActiveSheet(idx)
	}

	_ = f.SetColWidth(dataSheet, "A", "A", 18) // invoice number
	_ = f.SetColWidth(dataSheet, "B", "B", 28) // vendor
	_ = f.SetColWidth(dataSheet, "C", "E", 14) // dates and amount
	_ = f.SetColWidth(dataSheet, "F", "F", 12) // status
	_ = f.SetColWidth(summarySheet, "A", "A", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("report.xlsx.ok",
		"rows", len(rep.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
