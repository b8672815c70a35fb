package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/http/exts"
	"github.com/sweepref/guestsource/pkg/internal/services"
	"gorm.io/datatypes"
)

func createResponse(c *fiber.Ctx) error {
	var data struct {
		VenueID   uint              `json:"venue_id" validate:"required"`
		SourceKey string            `json:"source_key" validate:"required"`
		Metadata  datatypes.JSONMap `json:"metadata"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	record, todayCount, err := services.AddResponse(data.VenueID, data.SourceKey, data.Metadata)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(fiber.Map{
		"response_id": record.ID,
		"today_count": todayCount,
	})
}

func undoResponse(c *fiber.Ctx) error {
	responseId, _ := c.ParamsInt("responseId")

	var data struct {
		VenueID uint `json:"venue_id" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	todayCount, err := services.UndoResponse(uint(responseId), data.VenueID)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(fiber.Map{"today_count": todayCount})
}
