package api

import (
	"strings"

	domain "github.com/example/taskboard-demo/domain/user"
	"github.com/example/taskboard-demo/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// userContextKey is the locals key holding the resolved identity.
const userContextKey = "user"

// RequireUser resolves the caller's identity from the bearer token and
// stores it in the request context. Requests without a valid session are
// rejected with 401 before any handler or storage access runs. Resolution
// happens exactly once here; handlers read the result via CurrentUserID.
func RequireUser(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c)
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			return unauthorized(c)
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(userContextKey, claims)
		return c.Next()
	}
}

// CurrentUserID returns the user id resolved by RequireUser. The second
// return value is false when the request carries no authenticated identity.
func CurrentUserID(c *fiber.Ctx) (string, bool) {
	claims, ok := c.Locals(userContextKey).(*domain.Claims)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Unauthorized"})
}
