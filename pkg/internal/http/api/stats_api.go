package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

// parseFilterSpec reads the venue and range selection from the query string.
func parseFilterSpec(c *fiber.Ctx) (services.FilterSpec, error) {
	spec := services.FilterSpec{DateRange: services.DateRangeAll}

	if venue := c.Query("venue", "all"); venue != "all" {
		id, err := strconv.ParseUint(venue, 10, 32)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "venue must be \"all\" or a venue id")
		}
		venueId := uint(id)
		spec.VenueID = &venueId
	}

	switch rangeName := services.DateRange(c.Query("range", "all")); rangeName {
	case services.DateRangeAll, services.DateRangeToday, services.DateRangeWeek, services.DateRangeMonth:
		spec.DateRange = rangeName
	default:
		return spec, fiber.NewError(fiber.StatusBadRequest, "unknown date range")
	}

	return spec, nil
}

func getStats(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if _, err := services.ValidateAdminToken(token); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}

	venues, err := services.ListVenues()
	if err != nil {
		return translateError(err)
	}
	sources, err := services.ListSources()
	if err != nil {
		return translateError(err)
	}
	records, err := services.ListResponses()
	if err != nil {
		return translateError(err)
	}

	// One clock snapshot for the entire computation pass.
	now := time.Now()
	filtered := services.FilterResponses(records, spec, now)
	overview := services.BuildOverview(filtered, sources, venues, spec, now)

	return c.JSON(fiber.Map{
		"venues":    venues,
		"sources":   sources,
		"responses": filtered,
		"overview":  overview,
	})
}
