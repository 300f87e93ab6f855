package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the caller as described by the verified token.
type Identity struct {
	UserID uuid.UUID
	Role   string
	Email  string
}

// GetIdentity reads the claims JWTProtected stored in context.
func GetIdentity(c *fiber.Ctx) (Identity, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, false
	}

	raw, _ := claims["id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return Identity{}, false
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	return Identity{UserID: id, Role: role, Email: email}, true
}

// GetUserID extracts the user UUID from the id claim.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	identity, ok := GetIdentity(c)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}
	return identity.UserID, nil
}
