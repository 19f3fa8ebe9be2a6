package timeutil

import (
	"time"
)

// Sydney is the business timezone (AEST/AEDT)
var Sydney *time.Location

func init() {
	var err error
	Sydney, err = time.LoadLocation("Australia/Sydney")
	if err != nil {
		// Fallback: create fixed zone if Australia/Sydney not available
		Sydney = time.FixedZone("AEST", 10*60*60) // UTC+10
	}
}

// Now returns the current time in the business timezone
func Now() time.Time {
	return time.Now().In(Sydney)
}

// ToLocal converts any time to the business timezone
func ToLocal(t time.Time) time.Time {
	return t.In(Sydney)
}

// ParseLocal parses a time string in the business timezone
func ParseLocal(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Sydney)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatLocal formats a time in the business timezone using the given layout
func FormatLocal(t time.Time, layout string) string {
	return t.In(Sydney).Format(layout)
}
