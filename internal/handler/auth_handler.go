package handler

import (
	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Context(), identity)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.ChangePassword(c.Context(), identity, input); err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}
