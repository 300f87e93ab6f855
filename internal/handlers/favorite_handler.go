package handlers

import (
	"errors"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/middleware"
	"github.com/bproperties/property-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) Toggle(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ToggleFavoriteRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property id")
	}

	added, err := h.favoriteService.Toggle(c.UserContext(), userID, propertyID)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Property not found")
		}
		return internalError(c, err, "Failed to toggle favorite")
	}

	message := "Removed from favorites"
	if added {
		message = "Added to favorites"
	}
	return c.JSON(dto.ToggleFavoriteResponse{Message: message, IsFavorite: added})
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	properties, err := h.favoriteService.List(c.UserContext(), userID)
	if err != nil {
		return internalError(c, err, "Failed to fetch favorites")
	}
	return c.JSON(properties)
}
