// Package geo extracts coordinates from customer-shared map links.
package geo

import (
	"regexp"
	"strconv"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// Map links carry coordinates either as "@12.34,77.12" (place URLs) or as a
// "q=12.34,77.12" query parameter (search URLs).
var (
	atPattern = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	qPattern  = regexp.MustCompile(`[?&]q=(-?\d+\.\d+),(-?\d+\.\d+)`)
)

// FromURL extracts a latitude/longitude pair from a map-service URL. Returns
// false when the URL carries no recognizable coordinates.
func FromURL(url string) (models.Location, bool) {
	if url == "" {
		return models.Location{}, false
	}
	for _, re := range []*regexp.Regexp{atPattern, qPattern} {
		m := re.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		lat, err1 := strconv.ParseFloat(m[1], 64)
		lon, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		return models.Location{Lat: lat, Lon: lon}, true
	}
	return models.Location{}, false
}
