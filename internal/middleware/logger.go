package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestIDContextKey matches the default key of fiber's requestid middleware.
const RequestIDContextKey = "requestid"

func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDContextKey).(string)
	return id
}

// RequestLogger writes one access log line per request. Errors from the
// chain are rendered here so the logged status is the one the client sees.
func RequestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := logger.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = logger.Error()
		case status >= fiber.StatusBadRequest:
			ev = logger.Warn()
		}

		userID := ""
		if identity, ok := CurrentIdentity(c); ok {
			userID = identity.ID.String()
		}
		ev.Str("request_id", RequestID(c)).
			Str("method", c.Method()).
			Str("path", routePath(c)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", userID).
			Msg("request")

		return nil
	}
}

// routePath prefers the registered route pattern to keep labels bounded.
func routePath(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
		return r.Path
	}
	return c.Path()
}
