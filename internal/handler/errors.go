package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/validation"
)

// errorStatus maps service errors to responses. An empty message means the
// error's own text is shown.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid email or password"},
	{domain.ErrInvalidToken, fiber.StatusForbidden, "Token is not valid"},
	{domain.ErrForbidden, fiber.StatusForbidden, "Access denied"},

	{domain.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{domain.ErrEmailExists, fiber.StatusBadRequest, "User with this email already exists"},
	{domain.ErrEmailDomain, fiber.StatusBadRequest, "Email must belong to the organization domain"},
	{domain.ErrWrongPassword, fiber.StatusBadRequest, "Current password is incorrect"},
	{domain.ErrCannotDeleteSelf, fiber.StatusBadRequest, "You cannot delete your own account"},

	{domain.ErrComplaintNotFound, fiber.StatusNotFound, "Complaint not found"},
	{domain.ErrDepartmentNotFound, fiber.StatusBadRequest, "Selected department not found"},
	{domain.ErrNoHandlerAvailable, fiber.StatusBadRequest, "No handler found for this inquiry type"},
	{domain.ErrForwardTargetInvalid, fiber.StatusBadRequest, "Forward target must be a complaints handler"},
	{domain.ErrAttachmentRejected, fiber.StatusBadRequest, ""},

	{domain.ErrNotificationNotFound, fiber.StatusNotFound, "Notification not found"},

	{domain.ErrInvalidReportRange, fiber.StatusBadRequest, ""},
}

// mapError converts a service error into a *fiber.Error. Unknown errors pass
// through untouched and end up as a logged 500.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return middleware.BadRequest(verr.Error())
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			message := m.message
			if message == "" {
				message = err.Error()
			}
			return fiber.NewError(m.status, message)
		}
	}
	return err
}
