package breakdown

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/geo"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/notify"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/store"
)

// Service wires the record model, workflow, and filter engine to the store
// adapter. The actor is threaded into every call; the service keeps no
// ambient operator state.
type Service struct {
	store    store.Store
	notifier notify.Notifier
	clock    func() time.Time
}

// NewService creates a breakdown service over the given store and notifier.
func NewService(st store.Store, n notify.Notifier) *Service {
	return &Service{store: st, notifier: n, clock: time.Now}
}

// WithClock overrides the time source. Tests use this to pin timestamps.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// CreateBreakdown validates a submission, backfills coordinates from the map
// URL when they were not typed in, persists the new record, and emits a
// created event.
func (s *Service) CreateBreakdown(ctx context.Context, in RecordInput, actor string) (models.BreakdownRecord, error) {
	if (in.Latitude == nil || in.Longitude == nil) && in.CustomerLocationURL != "" {
		if loc, ok := geo.FromURL(in.CustomerLocationURL); ok {
			if in.Latitude == nil {
				lat := loc.Lat
				in.Latitude = &lat
			}
			if in.Longitude == nil {
				lon := loc.Lon
				in.Longitude = &lon
			}
		}
	}
	rec, err := CreateRecord(in, actor, s.clock())
	if err != nil {
		return models.BreakdownRecord{}, err
	}
	if err := s.store.Append(ctx, rec); err != nil {
		return models.BreakdownRecord{}, err
	}
	s.publish(ctx, notify.NewEvent(notify.EventCreated, rec, actor))
	return rec, nil
}

// UpdateBreakdown loads the record, applies the patch through the record
// model and workflow machine, and persists the result. The stored record is
// untouched on any error.
func (s *Service) UpdateBreakdown(ctx context.Context, id string, patch RecordPatch, actor string) (models.BreakdownRecord, error) {
	existing, err := s.GetBreakdown(ctx, id)
	if err != nil {
		return models.BreakdownRecord{}, err
	}
	wasResolved := existing.Status == models.StatusResolved
	updated, err := UpdateRecord(existing, patch, actor, s.clock())
	if err != nil {
		return models.BreakdownRecord{}, err
	}
	if err := s.store.UpdateByID(ctx, id, updated); err != nil {
		return models.BreakdownRecord{}, err
	}
	eventType := notify.EventUpdated
	if updated.Status == models.StatusResolved && !wasResolved {
		eventType = notify.EventResolved
	}
	s.publish(ctx, notify.NewEvent(eventType, updated, actor))
	return updated, nil
}

// GetBreakdown returns the record with the given ID from a fresh snapshot.
func (s *Service) GetBreakdown(ctx context.Context, id string) (models.BreakdownRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return models.BreakdownRecord{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.BreakdownRecord{}, store.ErrNotFound
}

// ListBreakdowns fetches a fresh snapshot and returns the matching records,
// most recent first.
func (s *Service) ListBreakdowns(ctx context.Context, c Criteria) ([]models.BreakdownRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(records, c), nil
}

// publish is best-effort: a dropped event never fails the write that caused it.
func (s *Service) publish(ctx context.Context, event notify.Event) {
	if err := s.notifier.Publish(ctx, event); err != nil {
		log.WithFields(log.Fields{"record_id": event.RecordID, "type": event.Type}).
			WithError(err).Warn("Failed to publish record event")
	}
}
