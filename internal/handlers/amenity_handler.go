package handlers

import (
	"errors"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AmenityHandler struct {
	amenityService *services.AmenityService
}

func NewAmenityHandler(amenityService *services.AmenityService) *AmenityHandler {
	return &AmenityHandler{amenityService: amenityService}
}

func (h *AmenityHandler) List(c *fiber.Ctx) error {
	amenities, err := h.amenityService.List(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch amenities")
	}
	return c.JSON(amenities)
}

func (h *AmenityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAmenityRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	amenity, err := h.amenityService.Create(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrAmenityExists) {
			return errorJSON(c, fiber.StatusBadRequest, "Amenity already exists")
		}
		return internalError(c, err, "Failed to create amenity")
	}
	return c.Status(fiber.StatusCreated).JSON(amenity)
}
