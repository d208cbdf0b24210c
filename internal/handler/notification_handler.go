package handler

import (
	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	}
	unreadOnly := c.QueryBool("unread_only", false)

	result, err := h.notifService.List(c.Context(), identity.ID, unreadOnly, params)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.Context(), identity.ID)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAsRead(c.Context(), id, identity.ID); err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAllAsRead(c.Context(), identity.ID)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All notifications marked as read",
		"updated": updated,
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.Delete(c.Context(), id, identity.ID); err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification deleted",
	})
}
