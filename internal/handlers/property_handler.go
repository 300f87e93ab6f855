package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/middleware"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/bproperties/property-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// List handles GET /properties?search=&type=&minPrice=&maxPrice=.
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	filter := repository.PropertyFilter{
		Search: c.Query("search"),
		Type:   c.Query("type"),
	}
	var ok bool
	if filter.MinPrice, ok = queryFloat(c, "minPrice"); !ok {
		return errorJSON(c, fiber.StatusBadRequest, "minPrice must be a number")
	}
	if filter.MaxPrice, ok = queryFloat(c, "maxPrice"); !ok {
		return errorJSON(c, fiber.StatusBadRequest, "maxPrice must be a number")
	}

	properties, err := h.propertyService.List(c.UserContext(), filter)
	if err != nil {
		return internalError(c, err, "Failed to fetch properties")
	}
	return c.JSON(properties)
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property id")
	}

	property, err := h.propertyService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Property not found")
		}
		return internalError(c, err, "Failed to fetch property")
	}
	return c.JSON(property)
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreatePropertyRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	property, err := h.propertyService.Create(c.UserContext(), callerID, &req)
	if err != nil {
		return h.writeError(c, err, "Failed to create property")
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property id")
	}

	var req dto.UpdatePropertyRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	property, err := h.propertyService.Update(c.UserContext(), id, &req)
	if err != nil {
		return h.writeError(c, err, "Failed to update property")
	}
	return c.JSON(property)
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property id")
	}

	if err := h.propertyService.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err, "Failed to delete property")
	}
	return c.JSON(dto.MessageResponse{Message: "Property deleted"})
}

func (h *PropertyHandler) writeError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Property not found")
	case errors.Is(err, services.ErrAgentNotFound):
		return errorJSON(c, fiber.StatusBadRequest, "Agent not found")
	case errors.Is(err, services.ErrUnknownAmenity):
		return errorJSON(c, fiber.StatusBadRequest, "Unknown amenity")
	}
	return internalError(c, err, message)
}

// queryFloat reads an optional numeric query parameter. ok is false only when
// the parameter is present but not a number.
func queryFloat(c *fiber.Ctx, key string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}
