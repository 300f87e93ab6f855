package middleware

import (
	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles lets the request through only when the token's role claim is
// one of roles. It must run after JWTProtected.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !allowed[identity.Role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied: insufficient role",
			})
		}
		return c.Next()
	}
}

func StaffRequired() fiber.Handler {
	return RequireRoles(models.StaffRoles...)
}

func AdminRequired() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}
