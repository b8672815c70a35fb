package services

import (
	"time"

	"github.com/sweepref/guestsource/pkg/internal/models"
)

type DateRange string

const (
	DateRangeAll   = DateRange("all")
	DateRangeToday = DateRange("today")
	DateRangeWeek  = DateRange("week")
	DateRangeMonth = DateRange("month")
)

// FilterSpec is the venue and period selection applied to the dashboard.
// A nil VenueID passes every venue through.
type FilterSpec struct {
	VenueID   *uint     `json:"venue_id"`
	DateRange DateRange `json:"date_range"`
}

// Cutoff resolves the inclusive lower bound for created_at, or nil when the
// range is unbounded. Week and month are rolling windows measured from now,
// not calendar-aligned ones; today starts at local midnight.
func (spec FilterSpec) Cutoff(now time.Time) *time.Time {
	var cutoff time.Time
	switch spec.DateRange {
	case DateRangeToday:
		cutoff = StartOfDay(now)
	case DateRangeWeek:
		cutoff = now.AddDate(0, 0, -7)
	case DateRangeMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &cutoff
}

// FilterResponses narrows records to the spec without mutating or reordering
// the input. One pass, one result slice.
func FilterResponses(records []models.ResponseRecord, spec FilterSpec, now time.Time) []models.ResponseRecord {
	cutoff := spec.Cutoff(now)

	out := make([]models.ResponseRecord, 0, len(records))
	for _, record := range records {
		if spec.VenueID != nil && record.VenueID != *spec.VenueID {
			continue
		}
		if cutoff != nil && record.CreatedAt.Before(*cutoff) {
			continue
		}
		out = append(out, record)
	}
	return out
}
