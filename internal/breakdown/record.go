package breakdown

import (
	"regexp"
	"strings"
	"time"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
)

// mobileRe is a basic phone-shape check: digits with an optional leading +,
// bounded length. Anything stricter belongs to the telephony provider, not
// a data-entry form.
var mobileRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// RecordInput carries the operator-entered fields of a new breakdown.
type RecordInput struct {
	BookingID           string             `json:"booking_id"`
	CustomerMobile      string             `json:"customer_mobile"`
	PickupLocation      string             `json:"pickup_location"`
	BookingDays         int                `json:"booking_days"`
	Issue               string             `json:"issue"`
	VehicleNumber       string             `json:"vehicle_number"`
	VehicleModel        string             `json:"vehicle_model"`
	VehicleType         models.VehicleType `json:"vehicle_type"`
	CustomerLocationURL string             `json:"customer_location_url"`
	Latitude            *float64           `json:"latitude"`
	Longitude           *float64           `json:"longitude"`
	Priority            models.Priority    `json:"priority"`
	FollowupBy          string             `json:"followup_by"`
}

// CreateRecord validates and normalizes a submission and returns a new record
// in the Open state with a freshly assigned ID. On failure it returns a
// ValidationError listing every violated field.
func CreateRecord(in RecordInput, actor string, now time.Time) (models.BreakdownRecord, error) {
	ts := models.FormatTime(now)
	rec := models.BreakdownRecord{
		ID:                  NextID(now),
		CreatedAt:           ts,
		LastUpdated:         ts,
		BookingID:           strings.TrimSpace(in.BookingID),
		CustomerMobile:      strings.TrimSpace(in.CustomerMobile),
		PickupLocation:      strings.TrimSpace(in.PickupLocation),
		BookingDays:         in.BookingDays,
		Issue:               strings.TrimSpace(in.Issue),
		VehicleNumber:       strings.ToUpper(strings.TrimSpace(in.VehicleNumber)),
		VehicleModel:        strings.TrimSpace(in.VehicleModel),
		VehicleType:         in.VehicleType,
		CustomerLocationURL: strings.TrimSpace(in.CustomerLocationURL),
		Latitude:            in.Latitude,
		Longitude:           in.Longitude,
		Priority:            in.Priority,
		Status:              models.StatusOpen,
		FollowupBy:          strings.TrimSpace(in.FollowupBy),
		AddedBy:             strings.TrimSpace(actor),
	}
	if err := validate(rec); err != nil {
		return models.BreakdownRecord{}, err
	}
	return rec, nil
}

// RecordPatch is a partial update: nil means "leave unchanged". ID and
// CreatedAt are present only so that attempts to modify them can be rejected.
type RecordPatch struct {
	ID                  *string             `json:"id"`
	CreatedAt           *string             `json:"created_at"`
	BookingID           *string             `json:"booking_id"`
	CustomerMobile      *string             `json:"customer_mobile"`
	PickupLocation      *string             `json:"pickup_location"`
	BookingDays         *int                `json:"booking_days"`
	Issue               *string             `json:"issue"`
	VehicleNumber       *string             `json:"vehicle_number"`
	VehicleModel        *string             `json:"vehicle_model"`
	VehicleType         *models.VehicleType `json:"vehicle_type"`
	CustomerLocationURL *string             `json:"customer_location_url"`
	Latitude            *float64            `json:"latitude"`
	Longitude           *float64            `json:"longitude"`
	Priority            *models.Priority    `json:"priority"`
	Status              *models.Status      `json:"status"`
	FollowupBy          *string             `json:"followup_by"`
}

// UpdateRecord applies the fields present in patch to a copy of existing,
// re-validates the merged result, and refreshes LastUpdated. Status changes
// go through the workflow state machine, which stamps ResolvedAt/ResolvedBy
// on first entry into Resolved. The input record is never mutated; on any
// error the caller's record is untouched.
func UpdateRecord(existing models.BreakdownRecord, patch RecordPatch, actor string, now time.Time) (models.BreakdownRecord, error) {
	verr := &ValidationError{}
	if patch.ID != nil && *patch.ID != existing.ID {
		verr.add("id", "immutable")
	}
	if patch.CreatedAt != nil && *patch.CreatedAt != existing.CreatedAt {
		verr.add("created_at", "immutable")
	}

	rec := existing
	if patch.BookingID != nil {
		rec.BookingID = strings.TrimSpace(*patch.BookingID)
	}
	if patch.CustomerMobile != nil {
		rec.CustomerMobile = strings.TrimSpace(*patch.CustomerMobile)
	}
	if patch.PickupLocation != nil {
		rec.PickupLocation = strings.TrimSpace(*patch.PickupLocation)
	}
	if patch.BookingDays != nil {
		rec.BookingDays = *patch.BookingDays
	}
	if patch.Issue != nil {
		rec.Issue = strings.TrimSpace(*patch.Issue)
	}
	if patch.VehicleNumber != nil {
		rec.VehicleNumber = strings.ToUpper(strings.TrimSpace(*patch.VehicleNumber))
	}
	if patch.VehicleModel != nil {
		rec.VehicleModel = strings.TrimSpace(*patch.VehicleModel)
	}
	if patch.VehicleType != nil {
		rec.VehicleType = *patch.VehicleType
	}
	if patch.CustomerLocationURL != nil {
		rec.CustomerLocationURL = strings.TrimSpace(*patch.CustomerLocationURL)
	}
	if patch.Latitude != nil {
		rec.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		rec.Longitude = patch.Longitude
	}
	if patch.Priority != nil {
		rec.Priority = *patch.Priority
	}
	if patch.FollowupBy != nil {
		rec.FollowupBy = strings.TrimSpace(*patch.FollowupBy)
	}

	if err := validateInto(rec, verr); err != nil {
		return models.BreakdownRecord{}, err
	}

	if patch.Status != nil {
		if err := ApplyTransition(&rec, *patch.Status, strings.TrimSpace(actor), now); err != nil {
			return models.BreakdownRecord{}, err
		}
	} else {
		rec.LastUpdated = models.FormatTime(now)
	}
	return rec, nil
}

func validate(rec models.BreakdownRecord) error {
	return validateInto(rec, &ValidationError{})
}

func validateInto(rec models.BreakdownRecord, verr *ValidationError) error {
	required := []struct {
		field, value string
	}{
		{"booking_id", rec.BookingID},
		{"customer_mobile", rec.CustomerMobile},
		{"pickup_location", rec.PickupLocation},
		{"vehicle_number", rec.VehicleNumber},
		{"issue", rec.Issue},
	}
	for _, f := range required {
		if f.value == "" {
			verr.add(f.field, "required")
		}
	}
	if rec.CustomerMobile != "" && !mobileRe.MatchString(rec.CustomerMobile) {
		verr.add("customer_mobile", "must be a phone number (7-15 digits, optional leading +)")
	}
	if rec.BookingDays < 0 {
		verr.add("booking_days", "must not be negative")
	}
	if !models.IsValidVehicleType(rec.VehicleType) {
		verr.add("vehicle_type", "must be one of Scooty, Car")
	}
	if !models.IsValidPriority(rec.Priority) {
		verr.add("priority", "must be one of Low, Medium, High")
	}
	return verr.orNil()
}
