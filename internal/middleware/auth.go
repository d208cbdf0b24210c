package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/domain"
)

const IdentityContextKey = "identity"

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	ParseToken(token string) (domain.Identity, error)
}

// AuthRequired rejects requests without a bearer token with 401 and requests
// whose token does not verify with 403.
func AuthRequired(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return Unauthorized("No token, authorization denied")
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return Unauthorized("No token, authorization denied")
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			return Forbidden("Token is not valid")
		}

		c.Locals(IdentityContextKey, identity)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthRequired.
func CurrentIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(IdentityContextKey).(domain.Identity)
	return identity, ok
}
