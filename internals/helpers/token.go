package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads user_id from c.Locals("user_id").
// Returns 401 when not logged in, 400 when the value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID in token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID in token")
	}
}

// GetUserIDIfAny is the optional-auth variant: returns nil when no identity
// was bound to the request, an error only when the bound value is malformed.
func GetUserIDIfAny(c *fiber.Ctx) (*uuid.UUID, error) {
	if c.Locals("user_id") == nil {
		return nil, nil
	}
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GetRoleFromToken reads the role claim bound by the auth middleware.
func GetRoleFromToken(c *fiber.Ctx) string {
	if r, ok := c.Locals("role").(string); ok {
		return r
	}
	return ""
}

// IsAdmin reports whether the request was made by an admin account.
func IsAdmin(c *fiber.Ctx) bool {
	return GetRoleFromToken(c) == "admin"
}
