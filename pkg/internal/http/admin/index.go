package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL)
	{
		admin.Post("/login", login)

		guarded := admin.Group("", authRequired)
		{
			guarded.Post("/password", changePassword)

			guarded.Get("/venues", listVenues)
			guarded.Post("/venues", createVenue)
			guarded.Put("/venues/:venueId", renameVenue)
			guarded.Put("/venues/:venueId/password", setVenuePassword)
			guarded.Delete("/venues/:venueId", deleteVenue)

			guarded.Get("/sources", listSources)
			guarded.Post("/sources", createSource)
			guarded.Put("/sources/:key", editSource)
			guarded.Delete("/sources/:key", deleteSource)

			guarded.Get("/responses", listResponses)
		}
	}
}

func authRequired(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")

	accountId, err := services.ValidateAdminToken(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals("accountId", accountId)
	return c.Next()
}
