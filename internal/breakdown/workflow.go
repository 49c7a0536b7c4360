package breakdown

import (
	"time"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// allowedTransitions is the workflow adjacency map. Resolved and Cancelled
// are terminal: nothing flows out of them, so reopening is impossible.
var allowedTransitions = map[models.Status][]models.Status{
	models.StatusOpen:       {models.StatusInProgress, models.StatusResolved, models.StatusCancelled},
	models.StatusInProgress: {models.StatusResolved, models.StatusCancelled},
	models.StatusResolved:   {},
	models.StatusCancelled:  {},
}

// CanTransition reports whether from -> to is an allowed status change.
// A self-transition is always allowed; it is a no-op re-save.
func CanTransition(from, to models.Status) bool {
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves a record to the requested status and refreshes
// LastUpdated. Entering Resolved stamps ResolvedAt and ResolvedBy exactly
// once; a Resolved -> Resolved re-save never overwrites them. A disallowed
// transition returns InvalidTransitionError and leaves the record untouched.
func ApplyTransition(rec *models.BreakdownRecord, to models.Status, actor string, now time.Time) error {
	if !CanTransition(rec.Status, to) {
		return &InvalidTransitionError{From: rec.Status, To: to}
	}
	rec.Status = to
	if to == models.StatusResolved && rec.ResolvedAt == "" {
		rec.ResolvedAt = models.FormatTime(now)
		rec.ResolvedBy = actor
	}
	rec.LastUpdated = models.FormatTime(now)
	return nil
}
