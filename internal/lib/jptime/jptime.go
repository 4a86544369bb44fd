// Package jptime normalizes timestamps to the service's single display
// time zone (Asia/Tokyo). Stored values are ISO-8601 strings at second
// precision; values without zone information are assumed to be UTC.
package jptime

import (
	"time"
)

var tokyo = mustLocation()

func mustLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic("failed to load Asia/Tokyo: " + err.Error())
	}
	return loc
}

func Location() *time.Location {
	return tokyo
}

// Now returns the current time in Asia/Tokyo truncated to second precision.
func Now() time.Time {
	return time.Now().In(tokyo).Truncate(time.Second)
}

// Normalize converts t to Asia/Tokyo at second precision. A zoneless time
// (produced by Parse for zoneless input, or constructed against time.UTC)
// is taken as UTC before conversion.
func Normalize(t time.Time) time.Time {
	return t.In(tokyo).Truncate(time.Second)
}

// FormatDB renders t the way createdAt is persisted: ISO-8601 with offset,
// second precision, in Asia/Tokyo.
func FormatDB(t time.Time) string {
	return Normalize(t).Format(time.RFC3339)
}

// Parse reads an ISO-8601 value as stored in createdAt or sent by report
// clients. Both offset-carrying and zoneless forms occur in the wild;
// zoneless values are interpreted as UTC.
func Parse(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			lastErr = err
			continue
		}
		return Normalize(t), nil
	}

	return time.Time{}, lastErr
}
