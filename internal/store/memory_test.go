package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

func TestMemoryStore_AppendAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := models.BreakdownRecord{ID: "BD-202503070905-AB", Status: models.StatusOpen}
	require.NoError(t, s.Append(ctx, rec))

	got, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])

	// The returned slice is a copy; mutating it does not touch the store.
	got[0].Status = models.StatusCancelled
	again, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, again[0].Status)
}

func TestMemoryStore_UpdateByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := models.BreakdownRecord{ID: "BD-202503070905-AB", Status: models.StatusOpen}
	require.NoError(t, s.Append(ctx, rec))

	rec.Status = models.StatusResolved
	require.NoError(t, s.UpdateByID(ctx, rec.ID, rec))

	got, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, got[0].Status)
}

func TestMemoryStore_UpdateMissingID(t *testing.T) {
	s := NewMemoryStore()

	err := s.UpdateByID(context.Background(), "BD-000000000000-XX", models.BreakdownRecord{})
	assert.ErrorIs(t, err, ErrNotFound)
}
