package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL)
	{
		api.Get("/venues/slug/:slug", getVenueBySlug)
		api.Post("/venues/:venueId/unlock", unlockVenue)
		api.Get("/venues/:venueId/today", getVenueTodayCount)

		api.Post("/responses", createResponse)
		api.Delete("/responses/:responseId", undoResponse)

		api.Get("/stats", getStats)

		kioskGroup := api.Group("/kiosk")
		{
			kioskGroup.Post("/sessions", createKioskSession)
			kioskGroup.Get("/sessions/:sessionId", getKioskSession)
			kioskGroup.Post("/sessions/:sessionId/unlock", unlockKioskSession)
			kioskGroup.Post("/sessions/:sessionId/submit", submitKioskSession)
			kioskGroup.Post("/sessions/:sessionId/undo", undoKioskSession)
		}
	}
}

// translateError maps the services taxonomy onto HTTP statuses.
func translateError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredential):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
