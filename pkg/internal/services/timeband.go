package services

import "time"

// Location pins calendar-day boundaries for every bucketing function.
// Venues of one installation share a single business timezone; it is loaded
// from settings at boot and never consulted implicitly via time.Local.
var Location = time.UTC

const dayKeyLayout = "02.01.2006"

// DayKey maps a timestamp to its calendar-day grouping key. Two timestamps
// produce the same key iff they fall on the same calendar day in Location.
func DayKey(ts time.Time) string {
	return ts.In(Location).Format(dayKeyLayout)
}

func HourOfDay(ts time.Time) int {
	return ts.In(Location).Hour()
}

// StartOfDay returns midnight of the calendar day containing ts.
func StartOfDay(ts time.Time) time.Time {
	local := ts.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

func IsToday(ts time.Time, now time.Time) bool {
	return DayKey(ts) == DayKey(now)
}

func IsYesterday(ts time.Time, now time.Time) bool {
	return DayKey(ts) == DayKey(now.AddDate(0, 0, -1))
}
