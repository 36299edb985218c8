package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brainwave-labs/quest_api/shared"
)

// TokenVerifier validates a bearer token and returns the user id it carries.
type TokenVerifier interface {
	VerifyJWTToken(tokenString string) (string, error)
}

// RoleLookup resolves a user's role for admin-gated routes.
type RoleLookup interface {
	GetUserRole(userID string) (string, error)
}

// RequiredAuth rejects requests without a valid bearer token and stores the
// authenticated user id in the request locals.
func RequiredAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return shared.NewUnauthorizedError(nil, "missing authorization header")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			return shared.NewUnauthorizedError(nil, "invalid authorization header")
		}

		userID, err := verifier.VerifyJWTToken(token)
		if err != nil {
			return shared.NewUnauthorizedError(err, "invalid or expired token")
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

// RequireRole gates a route on the authenticated user's role. Must run after
// RequiredAuth.
func RequireRole(lookup RoleLookup, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(shared.UserID).(string)
		if !ok || userID == "" {
			return shared.NewUnauthorizedError(nil, "not authenticated")
		}

		userRole, err := lookup.GetUserRole(userID)
		if err != nil {
			return shared.NewForbiddenError(err, "failed to resolve role")
		}
		if userRole != role {
			return shared.NewForbiddenError(nil, "insufficient role")
		}

		return c.Next()
	}
}
