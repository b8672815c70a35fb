package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func TestDayKeySameCalendarDay(t *testing.T) {
	morning := time.Date(2024, 3, 5, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, services.DayKey(morning), services.DayKey(night))
}

func TestDayKeyAcrossDayBoundary(t *testing.T) {
	beforeMidnight := time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC)
	afterMidnight := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	assert.NotEqual(t, services.DayKey(beforeMidnight), services.DayKey(afterMidnight))
}

func TestHourOfDay(t *testing.T) {
	assert.Equal(t, 0, services.HourOfDay(time.Date(2024, 3, 5, 0, 30, 0, 0, time.UTC)))
	assert.Equal(t, 23, services.HourOfDay(time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 5, 17, 42, 9, 0, time.UTC)

	start := services.StartOfDay(ts)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), start)
}

func TestIsTodayAndYesterday(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	assert.True(t, services.IsToday(time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC), now))
	assert.False(t, services.IsToday(time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC), now))

	assert.True(t, services.IsYesterday(time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC), now))
	assert.False(t, services.IsYesterday(time.Date(2024, 3, 3, 23, 0, 0, 0, time.UTC), now))
}
