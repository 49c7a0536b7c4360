package models

// VehicleType classifies the broken-down vehicle.
type VehicleType string

const (
	VehicleTypeScooty VehicleType = "Scooty"
	VehicleTypeCar    VehicleType = "Car"
)

// IsValidVehicleType checks if a vehicle type is valid.
func IsValidVehicleType(v VehicleType) bool {
	switch v {
	case VehicleTypeScooty, VehicleTypeCar:
		return true
	default:
		return false
	}
}

// Priority represents the urgency of a breakdown record. The ordering is for
// display only; no logic depends on it.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// IsValidPriority checks if a priority is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Status represents the workflow state of a breakdown record.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusCancelled  Status = "Cancelled"
)

// IsValidStatus checks if a status is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusCancelled:
		return true
	default:
		return false
	}
}

// BreakdownRecord is one logged breakdown incident. Timestamps are IST text
// in TimeLayout; ResolvedAt and ResolvedBy are empty until the record reaches
// Resolved. ID and CreatedAt are immutable once assigned.
type BreakdownRecord struct {
	ID                  string      `json:"id"`
	CreatedAt           string      `json:"created_at"`
	LastUpdated         string      `json:"last_updated"`
	BookingID           string      `json:"booking_id"`
	CustomerMobile      string      `json:"customer_mobile"`
	PickupLocation      string      `json:"pickup_location"`
	BookingDays         int         `json:"booking_days"`
	Issue               string      `json:"issue"`
	VehicleNumber       string      `json:"vehicle_number"`
	VehicleModel        string      `json:"vehicle_model"`
	VehicleType         VehicleType `json:"vehicle_type"`
	CustomerLocationURL string      `json:"customer_location_url,omitempty"`
	Latitude            *float64    `json:"latitude,omitempty"`
	Longitude           *float64    `json:"longitude,omitempty"`
	Priority            Priority    `json:"priority"`
	Status              Status      `json:"status"`
	FollowupBy          string      `json:"followup_by"`
	AddedBy             string      `json:"added_by"`
	ResolvedBy          string      `json:"resolved_by"`
	ResolvedAt          string      `json:"resolved_at"`
}
