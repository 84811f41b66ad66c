package domain

import "time"

const (
	// DatetimeLayout is ISO-8601 with a literal Z, only valid for UTC instants
	DatetimeLayout = "2006-01-02T15:04:05Z"
	// TimezoneUTC is the timezone name reported with DatetimeLayout values
	TimezoneUTC = "UTC"
)

// FormatUTC formats the instant in UTC using DatetimeLayout
func FormatUTC(t time.Time) string {
	return t.UTC().Format(DatetimeLayout)
}
