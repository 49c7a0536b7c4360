package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// WorkbookStore persists records to a local .xlsx workbook with the same row
// contract as the Google Sheet. It backs offline/dev runs where no
// spreadsheet credentials are configured.
type WorkbookStore struct {
	mu        sync.Mutex
	path      string
	sheetName string
}

// NewWorkbookStore opens (or creates) the workbook and makes sure the
// worksheet exists with the expected header row.
func NewWorkbookStore(path, sheetName string) (*WorkbookStore, error) {
	s := &WorkbookStore{path: path, sheetName: sheetName}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f := excelize.NewFile()
		defer f.Close()
		if err := s.ensureWorksheet(f); err != nil {
			return nil, err
		}
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("%w: create workbook: %v", ErrStoreUnavailable, err)
		}
		return s, nil
	}
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := s.ensureWorksheet(f); err != nil {
		return nil, err
	}
	if err := f.Save(); err != nil {
		return nil, fmt.Errorf("%w: save workbook: %v", ErrStoreUnavailable, err)
	}
	return s, nil
}

func (s *WorkbookStore) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrStoreUnavailable, err)
	}
	return f, nil
}

func (s *WorkbookStore) ensureWorksheet(f *excelize.File) error {
	idx, err := f.GetSheetIndex(s.sheetName)
	if err != nil {
		return fmt.Errorf("%w: inspect workbook: %v", ErrStoreUnavailable, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(s.sheetName); err != nil {
			return fmt.Errorf("%w: add worksheet: %v", ErrStoreUnavailable, err)
		}
		// Drop the default sheet so the workbook holds only breakdown data.
		if s.sheetName != "Sheet1" {
			if i, _ := f.GetSheetIndex("Sheet1"); i >= 0 {
				_ = f.DeleteSheet("Sheet1")
			}
		}
	}
	rows, err := f.GetRows(s.sheetName)
	if err != nil {
		return fmt.Errorf("%w: read worksheet: %v", ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		if err := f.SetSheetRow(s.sheetName, "A1", &models.Headers); err != nil {
			return fmt.Errorf("%w: write header: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}

// ListAll reads every data row, skipping the header.
func (s *WorkbookStore) ListAll(ctx context.Context) ([]models.BreakdownRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := f.GetRows(s.sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read worksheet: %v", ErrStoreUnavailable, err)
	}
	var out []models.BreakdownRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		out = append(out, models.RecordFromRow(row))
	}
	return out, nil
}

// Append adds one record row after the existing data.
func (s *WorkbookStore) Append(ctx context.Context, rec models.BreakdownRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := f.GetRows(s.sheetName)
	if err != nil {
		return fmt.Errorf("%w: read worksheet: %v", ErrStoreUnavailable, err)
	}
	row := rec.Row()
	if err := f.SetSheetRow(s.sheetName, fmt.Sprintf("A%d", len(rows)+1), &row); err != nil {
		return fmt.Errorf("%w: append row: %v", ErrStoreUnavailable, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("%w: save workbook: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateByID overwrites the row whose id column matches.
func (s *WorkbookStore) UpdateByID(ctx context.Context, id string, rec models.BreakdownRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := f.GetRows(s.sheetName)
	if err != nil {
		return fmt.Errorf("%w: read worksheet: %v", ErrStoreUnavailable, err)
	}
	for i, existing := range rows {
		if i == 0 || len(existing) == 0 || existing[0] != id {
			continue
		}
		row := rec.Row()
		if err := f.SetSheetRow(s.sheetName, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("%w: update row: %v", ErrStoreUnavailable, err)
		}
		if err := f.Save(); err != nil {
			return fmt.Errorf("%w: save workbook: %v", ErrStoreUnavailable, err)
		}
		return nil
	}
	return ErrNotFound
}
