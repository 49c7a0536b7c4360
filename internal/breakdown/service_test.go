package breakdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/notify"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/store"
)

// tickingClock advances one minute per call so every mutation gets a fresh,
// strictly later timestamp.
type tickingClock struct {
	t time.Time
}

func (c *tickingClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestService() (*Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	clock := &tickingClock{t: time.Date(2025, 3, 7, 9, 0, 0, 0, models.IST)}
	svc := NewService(st, notify.NoopNotifier{}).WithClock(clock.now)
	return svc, st
}

func TestService_CreateRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateBreakdown(ctx, validInput(), "Asha")
	require.NoError(t, err)

	// A fresh snapshot re-parses the persisted row into an identical record.
	listed, err := svc.ListBreakdowns(ctx, Criteria{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created, listed[0])
}

func TestService_CreateBackfillsCoordinatesFromURL(t *testing.T) {
	svc, _ := newTestService()
	in := validInput()
	in.CustomerLocationURL = "https://maps.google.com/maps?q=12.9716,77.5946"

	rec, err := svc.CreateBreakdown(context.Background(), in, "Asha")
	require.NoError(t, err)

	require.NotNil(t, rec.Latitude)
	require.NotNil(t, rec.Longitude)
	assert.Equal(t, 12.9716, *rec.Latitude)
	assert.Equal(t, 77.5946, *rec.Longitude)
}

func TestService_TypedCoordinatesWinOverURL(t *testing.T) {
	svc, _ := newTestService()
	lat := 13.0
	in := validInput()
	in.Latitude = &lat
	in.CustomerLocationURL = "https://maps.google.com/maps?q=12.9716,77.5946"

	rec, err := svc.CreateBreakdown(context.Background(), in, "Asha")
	require.NoError(t, err)

	assert.Equal(t, 13.0, *rec.Latitude)
	assert.Equal(t, 77.5946, *rec.Longitude)
}

func TestService_BreakdownLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateBreakdown(ctx, validInput(), "Asha")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, created.Status)

	inProgress := models.StatusInProgress
	afterStart, err := svc.UpdateBreakdown(ctx, created.ID, RecordPatch{Status: &inProgress}, "Asha")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, afterStart.Status)
	assert.Greater(t, afterStart.LastUpdated, created.LastUpdated)

	resolved := models.StatusResolved
	afterResolve, err := svc.UpdateBreakdown(ctx, created.ID, RecordPatch{Status: &resolved}, "Asha")
	require.NoError(t, err)
	assert.Equal(t, "Asha", afterResolve.ResolvedBy)
	assert.NotEmpty(t, afterResolve.ResolvedAt)

	// Reopening a resolved breakdown is rejected and the stored record is
	// left exactly as it was.
	open := models.StatusOpen
	_, err = svc.UpdateBreakdown(ctx, created.ID, RecordPatch{Status: &open}, "Asha")
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)

	stored, err := svc.GetBreakdown(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, afterResolve, stored)
}

func TestService_UpdateUnknownID(t *testing.T) {
	svc, _ := newTestService()

	follow := "Ravi"
	_, err := svc.UpdateBreakdown(context.Background(), "BD-000000000000-XX", RecordPatch{FollowupBy: &follow}, "Asha")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_ListFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	carIn := validInput()
	car, err := svc.CreateBreakdown(ctx, carIn, "Asha")
	require.NoError(t, err)

	scootyIn := validInput()
	scootyIn.VehicleType = models.VehicleTypeScooty
	scootyIn.VehicleModel = "Activa 6G"
	_, err = svc.CreateBreakdown(ctx, scootyIn, "Asha")
	require.NoError(t, err)

	got, err := svc.ListBreakdowns(ctx, Criteria{VehicleType: models.VehicleTypeCar})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, car.ID, got[0].ID)
}
