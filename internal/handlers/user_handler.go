package handlers

import (
	"errors"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch users")
	}
	return c.JSON(users)
}

func (h *UserHandler) Metrics(c *fiber.Ctx) error {
	m, err := h.userService.Metrics(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch metrics")
	}
	return c.JSON(m)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return h.writeError(c, err, "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	user, err := h.userService.Update(c.UserContext(), id, &req)
	if err != nil {
		return h.writeError(c, err, "Failed to update user")
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id")
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrUserHasListings) {
			return errorJSON(c, fiber.StatusConflict, "User still owns property listings; reassign them first")
		}
		return h.writeError(c, err, "Failed to delete user")
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}

func (h *UserHandler) writeError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return errorJSON(c, fiber.StatusBadRequest, "User already exists")
	case errors.Is(err, services.ErrInvalidRole):
		return errorJSON(c, fiber.StatusBadRequest, "Invalid role")
	case errors.Is(err, services.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, "User not found")
	}
	return internalError(c, err, message)
}
