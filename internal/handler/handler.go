package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Complaint    *ComplaintHandler
	Notification *NotificationHandler
	Report       *ReportHandler
	Health       *HealthHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Complaint:    NewComplaintHandler(services.Complaint),
		Notification: NewNotificationHandler(services.Notification),
		Report:       NewReportHandler(services.Report),
		Health:       NewHealthHandler(),
	}
}

func currentIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.Identity{}, middleware.Unauthorized("No token, authorization denied")
	}
	return identity, nil
}

func parseID(c *fiber.Ctx, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + what + " ID")
	}
	return id, nil
}
