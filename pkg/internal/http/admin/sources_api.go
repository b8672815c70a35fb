package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/http/exts"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func listSources(c *fiber.Ctx) error {
	sources, err := services.ListSources()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(sources)
}

func createSource(c *fiber.Ctx) error {
	var data struct {
		Key       string `json:"key" validate:"required,lowercase"`
		Label     string `json:"label" validate:"required"`
		Icon      string `json:"icon"`
		SortOrder int    `json:"sort_order"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	source, err := services.NewSource(data.Key, data.Label, data.Icon, data.SortOrder)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(source)
}

func editSource(c *fiber.Ctx) error {
	source, err := services.GetSource(c.Params("key"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "source not found")
	}

	var data struct {
		Label     string `json:"label" validate:"required"`
		Icon      string `json:"icon"`
		SortOrder int    `json:"sort_order"`
		Active    bool   `json:"active"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if source, err = services.EditSource(source, data.Label, data.Icon, data.SortOrder, data.Active); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(source)
}

func deleteSource(c *fiber.Ctx) error {
	source, err := services.GetSource(c.Params("key"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "source not found")
	}

	if err := services.DeleteSource(source); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
