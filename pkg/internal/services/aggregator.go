package services

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sweepref/guestsource/pkg/internal/models"
)

// PeakHourNone is the sentinel peak hour for an empty histogram.
const PeakHourNone = -1

type SourceCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type VenueCount struct {
	VenueID uint   `json:"venue_id"`
	Name    string `json:"name"`
	Count   int64  `json:"count"`
}

// Overview is everything the dashboard renders for one filter selection.
type Overview struct {
	Total int64 `json:"total"`

	BySource map[string]int64 `json:"by_source"`
	Ranking  []SourceCount    `json:"ranking"`
	ByHour   [24]int64        `json:"by_hour"`
	ByDay    []DayCount       `json:"by_day"`
	ByVenue  []VenueCount     `json:"by_venue,omitempty"`

	TodayCount          int64 `json:"today_count"`
	YesterdayCount      int64 `json:"yesterday_count"`
	PercentDelta        int   `json:"percent_delta"`
	AveragePerActiveDay int64 `json:"average_per_active_day"`
	PeakHour            int   `json:"peak_hour"`
}

// BuildOverview computes every aggregate from an already filtered record set.
// It is pure: now is the caller's snapshot, no clock or database is touched,
// and identical input always yields identical output including tie order.
func BuildOverview(
	records []models.ResponseRecord,
	sources []models.SourceOption,
	venues []models.Venue,
	spec FilterSpec,
	now time.Time,
) Overview {
	overview := Overview{
		Total:    int64(len(records)),
		BySource: make(map[string]int64),
		PeakHour: PeakHourNone,
	}

	counts := make(map[string]int64)
	dayCounts := make(map[string]int64)
	dayStarts := make(map[string]time.Time)
	venueCounts := make(map[uint]int64)

	for _, record := range records {
		counts[record.SourceKey]++
		venueCounts[record.VenueID]++
		overview.ByHour[HourOfDay(record.CreatedAt)]++

		key := DayKey(record.CreatedAt)
		if _, ok := dayCounts[key]; !ok {
			dayStarts[key] = StartOfDay(record.CreatedAt)
		}
		dayCounts[key]++

		if IsToday(record.CreatedAt, now) {
			overview.TodayCount++
		}
		if IsYesterday(record.CreatedAt, now) {
			overview.YesterdayCount++
		}
	}

	// The source distribution only shows options that are still offered;
	// records of retired sources stay in the totals and histograms.
	activeSources := lo.Filter(sources, func(item models.SourceOption, _ int) bool {
		return item.Active
	})
	sort.SliceStable(activeSources, func(i, j int) bool {
		return activeSources[i].SortOrder < activeSources[j].SortOrder
	})

	for _, source := range activeSources {
		overview.BySource[source.Key] = counts[source.Key]
	}
	overview.Ranking = lo.Map(activeSources, func(item models.SourceOption, _ int) SourceCount {
		return SourceCount{
			Key:   item.Key,
			Label: SourceLabel(item.Key, sources),
			Count: counts[item.Key],
		}
	})
	sort.SliceStable(overview.Ranking, func(i, j int) bool {
		return overview.Ranking[i].Count > overview.Ranking[j].Count
	})

	overview.ByDay = buildDaySeries(dayCounts, dayStarts)

	// A cross-venue comparison only means something on the combined view.
	if len(venues) > 1 && spec.VenueID == nil {
		overview.ByVenue = lo.Map(venues, func(item models.Venue, _ int) VenueCount {
			return VenueCount{
				VenueID: item.ID,
				Name:    item.Name,
				Count:   venueCounts[item.ID],
			}
		})
	}

	if overview.YesterdayCount > 0 {
		ratio := float64(overview.TodayCount-overview.YesterdayCount) / float64(overview.YesterdayCount)
		overview.PercentDelta = int(math.Round(ratio * 100))
	}
	if overview.Total > 0 && len(dayCounts) > 0 {
		overview.AveragePerActiveDay = int64(math.Round(float64(overview.Total) / float64(len(dayCounts))))
	}

	var peakCount int64
	for hour, count := range overview.ByHour {
		if count > peakCount {
			peakCount = count
			overview.PeakHour = hour
		}
	}

	return overview
}

// buildDaySeries orders day buckets by calendar date and keeps the most
// recent 30 distinct days.
func buildDaySeries(dayCounts map[string]int64, dayStarts map[string]time.Time) []DayCount {
	keys := lo.Keys(dayCounts)
	sort.Slice(keys, func(i, j int) bool {
		return dayStarts[keys[i]].Before(dayStarts[keys[j]])
	})
	if len(keys) > 30 {
		keys = keys[len(keys)-30:]
	}
	return lo.Map(keys, func(key string, _ int) DayCount {
		return DayCount{Date: key, Count: dayCounts[key]}
	})
}
