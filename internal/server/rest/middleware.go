package rest

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// userIDKey is the Locals key under which requireAuth stores the resolved
// user id. Handlers read it once and pass the id explicitly into services.
const userIDKey = "userID"

// requireAuth parses the Authorization header, validates the bearer token
// and stores the resolved user id in Locals for the protected handler.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization header format must be Bearer {token}"})
	}

	userID, err := s.users.ValidateToken(parts[1])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	c.Locals(userIDKey, userID)

	return c.Next()
}

// callerID returns the user id stored by requireAuth.
func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
