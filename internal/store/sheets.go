package store

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// SheetsStore persists records to one worksheet of a Google Sheet, one row
// per record in the models.Headers column order. Concurrent sessions are
// resolved by the sheet's native last-writer-wins behavior.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsStore connects with a service-account credentials file and makes
// sure the worksheet exists with the expected header row. Worksheet creation
// is idempotent and happens once per open, not on every write.
func NewSheetsStore(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*SheetsStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets client: %v", ErrStoreUnavailable, err)
	}
	s := &SheetsStore{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
	if err := s.ensureWorksheet(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SheetsStore) ensureWorksheet(ctx context.Context) error {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: get spreadsheet: %v", ErrStoreUnavailable, err)
	}
	exists := false
	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.sheetName {
			exists = true
			break
		}
	}
	if !exists {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: s.sheetName},
				},
			}},
		}
		if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("%w: add worksheet: %v", ErrStoreUnavailable, err)
		}
	}

	head, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rowRange(1)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: read header: %v", ErrStoreUnavailable, err)
	}
	if len(head.Values) == 0 {
		vr := &sheets.ValueRange{Values: [][]interface{}{toCells(models.Headers)}}
		_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.rowRange(1), vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%w: write header: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}

// ListAll fetches every data row, skipping the header.
func (s *SheetsStore) ListAll(ctx context.Context) ([]models.BreakdownRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: list rows: %v", ErrStoreUnavailable, err)
	}
	var out []models.BreakdownRecord
	for i, row := range resp.Values {
		if i == 0 {
			continue
		}
		out = append(out, models.RecordFromRow(fromCells(row)))
	}
	return out, nil
}

// Append adds one record row after the existing data.
func (s *SheetsStore) Append(ctx context.Context, rec models.BreakdownRecord) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(rec.Row())}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.dataRange(), vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append row: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateByID overwrites the row whose id column matches.
func (s *SheetsStore) UpdateByID(ctx context.Context, id string, rec models.BreakdownRecord) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: list rows: %v", ErrStoreUnavailable, err)
	}
	for i, row := range resp.Values {
		if i == 0 || len(row) == 0 {
			continue
		}
		if fmt.Sprint(row[0]) != id {
			continue
		}
		vr := &sheets.ValueRange{Values: [][]interface{}{toCells(rec.Row())}}
		_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.rowRange(i+1), vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%w: update row: %v", ErrStoreUnavailable, err)
		}
		return nil
	}
	return ErrNotFound
}

// dataRange spans the full 20-column layout (A through T).
func (s *SheetsStore) dataRange() string {
	return fmt.Sprintf("%s!A:T", s.sheetName)
}

func (s *SheetsStore) rowRange(row int) string {
	return fmt.Sprintf("%s!A%d:T%d", s.sheetName, row, row)
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

func fromCells(row []interface{}) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = fmt.Sprint(v)
	}
	return cells
}
