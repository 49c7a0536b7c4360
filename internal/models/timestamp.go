package models

import "time"

// TimeLayout is the textual form of every stored timestamp. All records share
// the same fixed zone, so values in this layout sort lexicographically in
// chronological order.
const TimeLayout = "2006-01-02 15:04:05-0700"

// IST is the fixed zone used for all stored timestamps.
var IST = loadIST()

func loadIST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+30*60)
}

// FormatTime renders a timestamp in IST in TimeLayout.
func FormatTime(t time.Time) string {
	return t.In(IST).Format(TimeLayout)
}

// ParseTime parses a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
