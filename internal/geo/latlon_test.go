package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURL(t *testing.T) {
	t.Run("place URL with @ coordinates", func(t *testing.T) {
		loc, ok := FromURL("https://www.google.com/maps/place/Rentelo/@12.9716,77.5946,17z")
		require.True(t, ok)
		assert.Equal(t, 12.9716, loc.Lat)
		assert.Equal(t, 77.5946, loc.Lon)
	})

	t.Run("search URL with q parameter", func(t *testing.T) {
		loc, ok := FromURL("https://maps.google.com/maps?q=12.2958,76.6394")
		require.True(t, ok)
		assert.Equal(t, 12.2958, loc.Lat)
		assert.Equal(t, 76.6394, loc.Lon)
	})

	t.Run("negative coordinates", func(t *testing.T) {
		loc, ok := FromURL("https://maps.google.com/maps?q=-33.8688,151.2093")
		require.True(t, ok)
		assert.Equal(t, -33.8688, loc.Lat)
		assert.Equal(t, 151.2093, loc.Lon)
	})

	t.Run("no coordinates", func(t *testing.T) {
		_, ok := FromURL("https://maps.google.com/maps?q=Indiranagar")
		assert.False(t, ok)
	})

	t.Run("empty URL", func(t *testing.T) {
		_, ok := FromURL("")
		assert.False(t, ok)
	})
}
