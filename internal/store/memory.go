package store

import (
	"context"
	"sync"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// MemoryStore is an in-process Store used by tests and the simulator target.
type MemoryStore struct {
	mu      sync.Mutex
	records []models.BreakdownRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListAll returns a copy of every stored record.
func (s *MemoryStore) ListAll(ctx context.Context) ([]models.BreakdownRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BreakdownRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Append adds one record.
func (s *MemoryStore) Append(ctx context.Context, rec models.BreakdownRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// UpdateByID overwrites the record with the matching ID.
func (s *MemoryStore) UpdateByID(ctx context.Context, id string, rec models.BreakdownRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = rec
			return nil
		}
	}
	return ErrNotFound
}
