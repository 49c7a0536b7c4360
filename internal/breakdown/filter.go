package breakdown

import (
	"sort"
	"strings"
	"time"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// Criteria selects a subset of records. Zero-valued criteria are skipped;
// present criteria are ANDed. A non-empty criterion never matches a record
// whose corresponding field is empty.
type Criteria struct {
	VehicleType models.VehicleType
	Status      models.Status
	Priority    models.Priority
	FollowupBy  string
	From        *time.Time
	To          *time.Time
}

// Filter returns the records matching the criteria, most recent first
// (CreatedAt descending, ties broken by ID ascending). The input slice is
// never modified.
func Filter(records []models.BreakdownRecord, c Criteria) []models.BreakdownRecord {
	out := make([]models.BreakdownRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			// TimeLayout in a fixed zone sorts lexicographically.
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func matches(rec models.BreakdownRecord, c Criteria) bool {
	if c.VehicleType != "" && rec.VehicleType != c.VehicleType {
		return false
	}
	if c.Status != "" && rec.Status != c.Status {
		return false
	}
	if c.Priority != "" && rec.Priority != c.Priority {
		return false
	}
	if c.FollowupBy != "" {
		if rec.FollowupBy == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(rec.FollowupBy), strings.ToLower(c.FollowupBy)) {
			return false
		}
	}
	if c.From != nil || c.To != nil {
		created, err := models.ParseTime(rec.CreatedAt)
		if err != nil {
			return false
		}
		if c.From != nil && created.Before(*c.From) {
			return false
		}
		if c.To != nil && created.After(*c.To) {
			return false
		}
	}
	return true
}
