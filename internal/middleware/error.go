package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler renders every error as an ErrorResponse. Anything that is not
// a *fiber.Error is logged and hidden behind a generic 500.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := "INTERNAL_ERROR"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message

			switch code {
			case fiber.StatusBadRequest:
				errorCode = "BAD_REQUEST"
			case fiber.StatusUnauthorized:
				errorCode = "UNAUTHORIZED"
			case fiber.StatusForbidden:
				errorCode = "FORBIDDEN"
			case fiber.StatusNotFound:
				errorCode = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				errorCode = "METHOD_NOT_ALLOWED"
			case fiber.StatusRequestEntityTooLarge:
				errorCode = "PAYLOAD_TOO_LARGE"
			case fiber.StatusTooManyRequests:
				errorCode = "TOO_MANY_REQUESTS"
			}
		}

		traceID := RequestID(c)
		if traceID == "" {
			traceID = uuid.New().String()[:8]
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).
				Str("request_id", traceID).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("request failed")
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode,
			Message: message,
			TraceID: traceID,
		})
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func TooManyRequests(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusTooManyRequests, message)
}
