package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/recipebox/recipebox/internal/common"
)

// respondError maps a service error to a transport status. Internal detail
// never crosses the boundary: unexpected errors are logged here and surface
// as a generic message.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, common.ErrorDuplicateEmail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": common.ErrorDuplicateEmail.Error()})
	case errors.Is(err, common.ErrorInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": common.ErrorInvalidCredentials.Error()})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	case errors.Is(err, common.ErrorForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": common.ErrorForbidden.Error()})
	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": common.ErrorNotFound.Error()})
	default:
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "err", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// errorHandler renders errors escaping a handler (including fiber's own
// routing errors) as JSON.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
