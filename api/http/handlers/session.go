package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	jwtauth "github.com/artem13815/cvbuilder/pkg/security/jwt"
)

// currentUser returns the id the auth middleware stored for this request.
func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(jwtauth.LocalUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not logged in")
	}
	return id, nil
}

func indexParam(c *fiber.Ctx) (int, error) {
	i, err := c.ParamsInt("index", -1)
	if err != nil || i < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "index must be a non-negative integer")
	}
	return i, nil
}
