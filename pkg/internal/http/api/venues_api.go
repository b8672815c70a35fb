package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/http/exts"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func getVenueBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	venue, err := services.GetVenueBySlug(slug)
	if err != nil {
		return translateError(err)
	}

	sources, err := services.ListActiveSources()
	if err != nil {
		return translateError(err)
	}

	return c.JSON(fiber.Map{
		"venue":        venue,
		"has_password": venue.HasPassword(),
		"sources":      sources,
	})
}

func unlockVenue(c *fiber.Ctx) error {
	venueId, _ := c.ParamsInt("venueId")

	var data struct {
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.CheckVenuePassword(uint(venueId), data.Password); err != nil {
		return translateError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func getVenueTodayCount(c *fiber.Ctx) error {
	venueId, _ := c.ParamsInt("venueId")

	count, err := services.CountToday(uint(venueId), time.Now())
	if err != nil {
		return translateError(err)
	}

	return c.JSON(fiber.Map{"count": count})
}
