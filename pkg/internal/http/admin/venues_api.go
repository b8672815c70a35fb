package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/sweepref/guestsource/pkg/internal/http/exts"
	"github.com/sweepref/guestsource/pkg/internal/models"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func requireVenue(c *fiber.Ctx) (models.Venue, error) {
	venueId, _ := c.ParamsInt("venueId")

	venue, err := services.GetVenue(uint(venueId))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return venue, fiber.NewError(fiber.StatusNotFound, "venue not found")
		}
		return venue, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return venue, nil
}

func listVenues(c *fiber.Ctx) error {
	venues, err := services.ListVenues()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(lo.Map(venues, func(item models.Venue, _ int) fiber.Map {
		return fiber.Map{
			"venue":        item,
			"has_password": item.HasPassword(),
		}
	}))
}

func createVenue(c *fiber.Ctx) error {
	var data struct {
		Name string  `json:"name" validate:"required"`
		Slug *string `json:"slug"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	venue, err := services.NewVenue(data.Name, data.Slug)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(venue)
}

func renameVenue(c *fiber.Ctx) error {
	venue, err := requireVenue(c)
	if err != nil {
		return err
	}

	var data struct {
		Name string `json:"name" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if venue, err = services.RenameVenue(venue, data.Name); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(venue)
}

func setVenuePassword(c *fiber.Ctx) error {
	venue, err := requireVenue(c)
	if err != nil {
		return err
	}

	// A nil password clears the kiosk gate for the venue.
	var data struct {
		Password *string `json:"password"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if venue, err = services.SetVenuePassword(venue, data.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"venue":        venue,
		"has_password": venue.HasPassword(),
	})
}

func deleteVenue(c *fiber.Ctx) error {
	venue, err := requireVenue(c)
	if err != nil {
		return err
	}

	if err := services.DeleteVenue(venue); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
