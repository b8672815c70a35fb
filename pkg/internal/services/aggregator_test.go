package services_test

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweepref/guestsource/pkg/internal/models"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func referenceSources() []models.SourceOption {
	return []models.SourceOption{
		{Key: "instagram", Label: "Instagram / соцсети", SortOrder: 0, Active: true},
		{Key: "friends", Label: "Рекомендация друзей", SortOrder: 1, Active: true},
		{Key: "internet_ads", Label: "Реклама в интернете", SortOrder: 2, Active: true},
		{Key: "banner", Label: "Баннер / вывеска", SortOrder: 3, Active: true},
	}
}

func singleVenue() []models.Venue {
	venue := models.Venue{Name: "Main Hall"}
	venue.ID = 1
	return []models.Venue{venue}
}

func TestOverviewSingleDayScenario(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	records := []models.ResponseRecord{
		recordAt(1, 1, "friends", time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)),
		recordAt(2, 1, "friends", time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC)),
		recordAt(3, 1, "friends", time.Date(2024, 3, 5, 13, 30, 0, 0, time.UTC)),
		recordAt(4, 1, "banner", time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)),
		recordAt(5, 1, "banner", time.Date(2024, 3, 5, 18, 15, 0, 0, time.UTC)),
	}
	spec := services.FilterSpec{DateRange: services.DateRangeToday}

	filtered := services.FilterResponses(records, spec, now)
	overview := services.BuildOverview(filtered, referenceSources(), singleVenue(), spec, now)

	assert.Equal(t, int64(5), overview.Total)
	assert.Equal(t, int64(3), overview.BySource["friends"])
	assert.Equal(t, int64(2), overview.BySource["banner"])

	var histogramSum int64
	for _, count := range overview.ByHour {
		histogramSum += count
	}
	assert.Equal(t, int64(len(filtered)), histogramSum)

	require.GreaterOrEqual(t, len(overview.Ranking), 2)
	assert.Equal(t, "friends", overview.Ranking[0].Key)
	assert.Equal(t, "banner", overview.Ranking[1].Key)

	assert.Equal(t, int64(5), overview.TodayCount)
	assert.Equal(t, 13, overview.PeakHour)
}

func TestOverviewIdempotentIncludingTies(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	// instagram and banner tie on purpose; sort order must break the tie
	// the same way on every run.
	records := []models.ResponseRecord{
		recordAt(1, 1, "instagram", now.Add(-2*time.Hour)),
		recordAt(2, 1, "banner", now.Add(-1*time.Hour)),
	}
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	first := services.BuildOverview(records, referenceSources(), singleVenue(), spec, now)
	for i := 0; i < 20; i++ {
		again := services.BuildOverview(records, referenceSources(), singleVenue(), spec, now)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "instagram", first.Ranking[0].Key)
	assert.Equal(t, "banner", first.Ranking[1].Key)
}

func TestOverviewPercentDeltaZeroBaseline(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	records := []models.ResponseRecord{
		recordAt(1, 1, "friends", now.Add(-time.Hour)),
		recordAt(2, 1, "friends", now.Add(-2*time.Hour)),
	}
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	overview := services.BuildOverview(records, referenceSources(), singleVenue(), spec, now)

	assert.Equal(t, int64(2), overview.TodayCount)
	assert.Equal(t, int64(0), overview.YesterdayCount)
	assert.Equal(t, 0, overview.PercentDelta)
}

func TestOverviewPercentDelta(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	records := []models.ResponseRecord{
		recordAt(1, 1, "friends", now),
		recordAt(2, 1, "friends", now),
		recordAt(3, 1, "friends", now),
		recordAt(4, 1, "friends", now.AddDate(0, 0, -1)),
		recordAt(5, 1, "friends", now.AddDate(0, 0, -1)),
	}
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	overview := services.BuildOverview(records, referenceSources(), singleVenue(), spec, now)

	assert.Equal(t, 50, overview.PercentDelta)
}

func TestOverviewEmptyInput(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	overview := services.BuildOverview(nil, referenceSources(), singleVenue(), spec, now)

	assert.Equal(t, int64(0), overview.Total)
	assert.Equal(t, services.PeakHourNone, overview.PeakHour)
	assert.Equal(t, int64(0), overview.AveragePerActiveDay)
	assert.Equal(t, 0, overview.PercentDelta)
	assert.Empty(t, overview.ByDay)
}

func TestOverviewPeakHourTieBreaksLow(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	records := []models.ResponseRecord{
		recordAt(1, 1, "friends", time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)),
		recordAt(2, 1, "friends", time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)),
	}
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	overview := services.BuildOverview(records, referenceSources(), singleVenue(), spec, now)
	assert.Equal(t, 9, overview.PeakHour)
}

func TestOverviewInactiveSourceStaysInTotals(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	sources := referenceSources()
	sources[0].Active = false // retire instagram

	records := []models.ResponseRecord{
		recordAt(1, 1, "instagram", now.Add(-time.Hour)),
		recordAt(2, 1, "friends", now.Add(-time.Hour)),
	}
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	overview := services.BuildOverview(records, sources, singleVenue(), spec, now)

	assert.Equal(t, int64(2), overview.Total)
	assert.NotContains(t, overview.BySource, "instagram")
	assert.NotContains(t, lo.Map(overview.Ranking, func(item services.SourceCount, _ int) string {
		return item.Key
	}), "instagram")

	var distributionSum int64
	for _, count := range overview.BySource {
		distributionSum += count
	}
	assert.LessOrEqual(t, distributionSum, overview.Total)
}

func TestOverviewUnknownSourceLabelFallsBack(t *testing.T) {
	assert.Equal(t, "word_of_mouth", services.SourceLabel("word_of_mouth", referenceSources()))
	assert.Equal(t, "Баннер / вывеска", services.SourceLabel("banner", referenceSources()))
}

func TestOverviewDaySeriesOrderedAndCapped(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var records []models.ResponseRecord
	for day := 0; day < 40; day++ {
		records = append(records, recordAt(uint(day+1), 1, "friends", now.AddDate(0, 0, -day)))
	}
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	overview := services.BuildOverview(records, referenceSources(), singleVenue(), spec, now)

	require.Len(t, overview.ByDay, 30)
	assert.Equal(t, services.DayKey(now.AddDate(0, 0, -29)), overview.ByDay[0].Date)
	assert.Equal(t, services.DayKey(now), overview.ByDay[29].Date)
}

func TestOverviewByVenueOnlyOnCombinedView(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	second := models.Venue{Name: "Terrace"}
	second.ID = 2
	venues := append(singleVenue(), second)

	records := []models.ResponseRecord{
		recordAt(1, 1, "friends", now),
		recordAt(2, 2, "banner", now),
		recordAt(3, 2, "banner", now),
	}

	combined := services.FilterSpec{DateRange: services.DateRangeAll}
	overview := services.BuildOverview(records, referenceSources(), venues, combined, now)
	require.Len(t, overview.ByVenue, 2)
	assert.Equal(t, int64(1), overview.ByVenue[0].Count)
	assert.Equal(t, int64(2), overview.ByVenue[1].Count)

	venueId := uint(2)
	selected := services.FilterSpec{VenueID: &venueId, DateRange: services.DateRangeAll}
	filtered := services.FilterResponses(records, selected, now)
	overview = services.BuildOverview(filtered, referenceSources(), venues, selected, now)
	assert.Nil(t, overview.ByVenue)

	overview = services.BuildOverview(records, referenceSources(), singleVenue(), combined, now)
	assert.Nil(t, overview.ByVenue)
}

func TestOverviewAveragePerActiveDay(t *testing.T) {
	now := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	records := []models.ResponseRecord{
		recordAt(1, 1, "friends", now),
		recordAt(2, 1, "friends", now),
		recordAt(3, 1, "friends", now.AddDate(0, 0, -1)),
	}
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	overview := services.BuildOverview(records, referenceSources(), singleVenue(), spec, now)

	// 3 responses over 2 active days rounds up to 2.
	assert.Equal(t, int64(2), overview.AveragePerActiveDay)
}
