package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the calendar-date format used by day selectors.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDay parses a YYYY-MM-DD selector in the given location, falling
// back to today on empty or malformed input. Malformed dates degrade to
// the default instead of failing the request.
func ParseDay(dateStr string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if dateStr == "" {
		return StartOfDay(time.Now().In(loc))
	}
	day, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		log.Warn().Err(err).Str("date", dateStr).Msg("Failed to parse date selector, using today")
		return StartOfDay(time.Now().In(loc))
	}
	return day
}

// StartOfDay truncates an instant to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayBounds returns the half-open instant range [start, end) covering the
// calendar day of t. Attendance lookups always compare stored instants
// against this range, never a stored instant against a calendar date, so
// time-of-day components in the timestamp cannot break day matching.
func DayBounds(t time.Time) (start, end time.Time) {
	start = StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}
