package store

import (
	"context"
	"errors"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// ErrNotFound is returned when an update targets an ID absent from the store,
// e.g. a stale view after an out-of-band row deletion.
var ErrNotFound = errors.New("breakdown record not found")

// ErrStoreUnavailable wraps backend I/O failures. The core treats these as
// non-retriable; the operator retries manually after the caller displays it.
var ErrStoreUnavailable = errors.New("breakdown store unavailable")

// Store is the persistence capability the core depends on: a remote tabular
// store holding one row per record, resolved last-writer-wins. Every session
// works from a full ListAll snapshot; there is no partial read.
type Store interface {
	// ListAll fetches every record, excluding the header row.
	ListAll(ctx context.Context) ([]models.BreakdownRecord, error)
	// Append adds one new record row.
	Append(ctx context.Context, rec models.BreakdownRecord) error
	// UpdateByID overwrites the row whose id column matches. Returns
	// ErrNotFound if no such row exists.
	UpdateByID(ctx context.Context, id string, rec models.BreakdownRecord) error
}
