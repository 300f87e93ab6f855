package handlers

import (
	"errors"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return errorJSON(c, fiber.StatusBadRequest, "User already exists")
		case errors.Is(err, services.ErrInvalidRole):
			return errorJSON(c, fiber.StatusBadRequest, "Invalid role")
		}
		return internalError(c, err, "Failed to register user")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid credentials")
		}
		return internalError(c, err, "Failed to log in")
	}

	return c.JSON(resp)
}
