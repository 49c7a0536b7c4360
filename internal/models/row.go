package models

import (
	"strconv"
	"strings"
)

// Headers is the column layout of the breakdowns worksheet. The order is
// significant: the backing store is positional.
var Headers = []string{
	"id", "created_at", "last_updated", "booking_id", "customer_mobile",
	"pickup_location", "booking_days", "issue", "vehicle_number",
	"vehicle_model", "vehicle_type", "customer_location_url", "latitude",
	"longitude", "priority", "status", "followup_by", "added_by",
	"resolved_by", "resolved_at",
}

// Row renders the record as one worksheet row matching Headers.
func (r BreakdownRecord) Row() []string {
	return []string{
		r.ID,
		r.CreatedAt,
		r.LastUpdated,
		r.BookingID,
		r.CustomerMobile,
		r.PickupLocation,
		strconv.Itoa(r.BookingDays),
		r.Issue,
		r.VehicleNumber,
		r.VehicleModel,
		string(r.VehicleType),
		r.CustomerLocationURL,
		formatCoord(r.Latitude),
		formatCoord(r.Longitude),
		string(r.Priority),
		string(r.Status),
		r.FollowupBy,
		r.AddedBy,
		r.ResolvedBy,
		r.ResolvedAt,
	}
}

// RecordFromRow parses one worksheet row. Parsing is lenient: short rows are
// padded and unparseable numbers become zero values, so a hand-edited sheet
// never breaks a session.
func RecordFromRow(row []string) BreakdownRecord {
	cells := make([]string, len(Headers))
	for i := range cells {
		if i < len(row) {
			cells[i] = strings.TrimSpace(row[i])
		}
	}
	days, _ := strconv.Atoi(cells[6])
	return BreakdownRecord{
		ID:                  cells[0],
		CreatedAt:           cells[1],
		LastUpdated:         cells[2],
		BookingID:           cells[3],
		CustomerMobile:      cells[4],
		PickupLocation:      cells[5],
		BookingDays:         days,
		Issue:               cells[7],
		VehicleNumber:       cells[8],
		VehicleModel:        cells[9],
		VehicleType:         VehicleType(cells[10]),
		CustomerLocationURL: cells[11],
		Latitude:            parseCoord(cells[12]),
		Longitude:           parseCoord(cells[13]),
		Priority:            Priority(cells[14]),
		Status:              Status(cells[15]),
		FollowupBy:          cells[16],
		AddedBy:             cells[17],
		ResolvedBy:          cells[18],
		ResolvedAt:          cells[19],
	}
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
