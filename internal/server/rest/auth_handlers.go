package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/recipebox/recipebox/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type authResponse struct {
	User  *models.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// Register handles POST /api/auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse request body"})
	}

	user, token, err := s.users.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	s.logger.Info(c.UserContext(), "user registered", "userID", user.ID)
	return c.Status(fiber.StatusCreated).JSON(authResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse request body"})
	}

	user, token, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(authResponse{User: user, Token: token})
}

// UpdatePassword handles PUT /api/auth/password.
func (s *Server) UpdatePassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse request body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "current password and new password are required"})
	}

	if err := s.users.UpdatePassword(c.UserContext(), callerID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "password updated successfully"})
}
