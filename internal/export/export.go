// Package export renders filtered record sets for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

const xlsxSheetName = "Breakdowns"

// WriteCSV writes the records as CSV, header row first, in the worksheet
// column order.
func WriteCSV(w io.Writer, records []models.BreakdownRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the records as a single-sheet workbook with a bold header.
func WriteXLSX(w io.Writer, records []models.BreakdownRecord) error {
	f := excelize.NewFile()
	defer f.Close()
	idx, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headers := models.Headers
	if err := f.SetSheetRow(xlsxSheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(xlsxSheetName, "A1", last, headerStyle)
	}
	for i, rec := range records {
		row := rec.Row()
		if err := f.SetSheetRow(xlsxSheetName, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write row %s: %w", rec.ID, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
