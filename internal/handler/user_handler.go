package handler

import (
	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Context(), identity)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.userService.Create(c.Context(), identity, input)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}

	u, err := h.userService.Get(c.Context(), identity, id)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	u, err := h.userService.Update(c.Context(), identity, id, input)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), identity, id); err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
