package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDay(t *testing.T) {
	loc := time.UTC

	t.Run("valid date", func(t *testing.T) {
		day := ParseDay("2026-03-09", loc)
		assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), day)
	})

	t.Run("empty falls back to today", func(t *testing.T) {
		day := ParseDay("", loc)
		now := time.Now().In(loc)
		assert.Equal(t, StartOfDay(now), day)
	})

	t.Run("malformed falls back to today", func(t *testing.T) {
		day := ParseDay("09/03/2026", loc)
		now := time.Now().In(loc)
		assert.Equal(t, StartOfDay(now), day)
	})
}

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2026, 3, 9, 17, 42, 13, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), StartOfDay(instant))
}

func TestDayBounds(t *testing.T) {
	instant := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	start, end := DayBounds(instant)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), end)

	// The range is half-open: end-of-day instants belong to the day,
	// midnight of the next day does not.
	lastSecond := time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)
	assert.True(t, !lastSecond.Before(start) && lastSecond.Before(end))
	assert.False(t, end.Before(end))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
}
