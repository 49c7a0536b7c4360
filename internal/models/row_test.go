package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowRoundTrip(t *testing.T) {
	lat := 12.9716
	lon := 77.5946
	rec := BreakdownRecord{
		ID:                  "BD-202503070905-AB",
		CreatedAt:           "2025-03-07 09:05:00+0530",
		LastUpdated:         "2025-03-07 10:00:00+0530",
		BookingID:           "BK100",
		CustomerMobile:      "+919876543210",
		PickupLocation:      "Indiranagar",
		BookingDays:         3,
		Issue:               "Flat tyre",
		VehicleNumber:       "KA01AB1234",
		VehicleModel:        "Swift",
		VehicleType:         VehicleTypeCar,
		CustomerLocationURL: "https://maps.google.com/?q=12.9716,77.5946",
		Latitude:            &lat,
		Longitude:           &lon,
		Priority:            PriorityHigh,
		Status:              StatusInProgress,
		FollowupBy:          "Ravi",
		AddedBy:             "Asha",
	}

	row := rec.Row()
	require.Len(t, row, len(Headers))
	assert.Equal(t, rec, RecordFromRow(row))
}

func TestRecordFromRow_Lenient(t *testing.T) {
	t.Run("short row padded", func(t *testing.T) {
		rec := RecordFromRow([]string{"BD-202503070905-AB", "2025-03-07 09:05:00+0530"})
		assert.Equal(t, "BD-202503070905-AB", rec.ID)
		assert.Empty(t, rec.ResolvedAt)
		assert.Nil(t, rec.Latitude)
	})

	t.Run("garbage numbers become zero values", func(t *testing.T) {
		row := make([]string, len(Headers))
		row[6] = "many"
		row[12] = "north"
		rec := RecordFromRow(row)
		assert.Zero(t, rec.BookingDays)
		assert.Nil(t, rec.Latitude)
	})
}

func TestTimestampLayoutSortsLexicographically(t *testing.T) {
	// The filter engine orders records by comparing formatted timestamps as
	// strings; fixed width and a fixed zone make that safe.
	earlier := "2025-03-07 09:05:00+0530"
	later := "2025-03-07 10:00:00+0530"
	assert.Less(t, earlier, later)

	a, err := ParseTime(earlier)
	require.NoError(t, err)
	b, err := ParseTime(later)
	require.NoError(t, err)
	assert.True(t, a.Before(b))
}
