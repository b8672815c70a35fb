package admin

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/models"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

// listResponses serves the raw log table, filtered like the dashboard and
// ordered newest first.
func listResponses(c *fiber.Ctx) error {
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	if venue := c.Query("venue", "all"); venue != "all" {
		id, err := strconv.ParseUint(venue, 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "venue must be \"all\" or a venue id")
		}
		venueId := uint(id)
		spec.VenueID = &venueId
	}
	switch rangeName := services.DateRange(c.Query("range", "all")); rangeName {
	case services.DateRangeAll, services.DateRangeToday, services.DateRangeWeek, services.DateRangeMonth:
		spec.DateRange = rangeName
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown date range")
	}

	records, err := services.ListResponses()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	sources, err := services.ListSources()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	filtered := services.FilterResponses(records, spec, time.Now())

	type row struct {
		models.ResponseRecord
		SourceLabel string `json:"source_label"`
	}

	rows := make([]row, 0, len(filtered))
	for i := len(filtered) - 1; i >= 0; i-- {
		rows = append(rows, row{
			ResponseRecord: filtered[i],
			SourceLabel:    services.SourceLabel(filtered[i].SourceKey, sources),
		})
	}

	return c.JSON(rows)
}
