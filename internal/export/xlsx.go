package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stipsportal/docintel/internal/pipeline"
)

// SummaryXLSX renders a batch summary as a workbook: one row per document
// with its status, detected type, output file, and error if any.
func SummaryXLSX(entries []pipeline.SummaryEntry, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Summary"
	// Rename the default sheet so the workbook carries exactly one.
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Document", "Status", "Detected Type", "JSON File", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, e.Document)
		write(2, string(e.Status))
		write(3, e.DetectedType)
		write(4, e.JSONFile)
		write(5, e.Error)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 40) // document
	_ = f.SetColWidth(sheet, "B", "B", 10) // status
	_ = f.SetColWidth(sheet, "C", "C", 26) // type
	_ = f.SetColWidth(sheet, "D", "D", 40) // json file
	_ = f.SetColWidth(sheet, "E", "E", 60) // error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
