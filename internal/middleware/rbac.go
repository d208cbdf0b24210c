package middleware

import (
	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/policy"
)

// RequirePermission gates a route on an action whose rule depends only on the
// caller's role. Rules that need the target resource are checked in services.
func RequirePermission(pol *policy.Policy, action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return Unauthorized("No token, authorization denied")
		}

		if !pol.Allowed(identity, action, policy.Facts{}) {
			return Forbidden("Access denied")
		}

		return c.Next()
	}
}
