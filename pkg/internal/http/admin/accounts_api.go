package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sweepref/guestsource/pkg/internal/http/exts"
	"github.com/sweepref/guestsource/pkg/internal/services"
)

func login(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	token, err := services.AuthenticateAdmin(data.Username, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(fiber.Map{"token": token})
}

func changePassword(c *fiber.Ctx) error {
	accountId := c.Locals("accountId").(uint)

	var data struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.ChangeAdminPassword(accountId, data.OldPassword, data.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredential) {
			return fiber.NewError(fiber.StatusBadRequest, "wrong old password")
		}
		if errors.Is(err, services.ErrValidation) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
