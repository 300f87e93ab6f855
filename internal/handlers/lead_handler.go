package handlers

import (
	"errors"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create is public: visitors submit inquiries without an account.
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	lead, err := h.leadService.Create(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			return errorJSON(c, fiber.StatusBadRequest, "Invalid property id")
		case errors.Is(err, services.ErrPropertyNotFound):
			return errorJSON(c, fiber.StatusNotFound, "Property not found")
		}
		return internalError(c, err, "Failed to submit inquiry")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateLeadResponse{
		ID:         lead.ID,
		Status:     lead.Status,
		PropertyID: lead.PropertyID,
		CreatedAt:  lead.CreatedAt,
	})
}

func (h *LeadHandler) List(c *fiber.Ctx) error {
	leads, err := h.leadService.List(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch leads")
	}

	resp := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		resp = append(resp, toLeadResponse(&leads[i]))
	}
	return c.JSON(resp)
}

func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid lead id")
	}

	var req dto.UpdateLeadStatusRequest
	if msg := bind(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	if err := h.leadService.UpdateStatus(c.UserContext(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLeadStatus):
			return errorJSON(c, fiber.StatusBadRequest, "Invalid lead status")
		case errors.Is(err, services.ErrLeadNotFound):
			return errorJSON(c, fiber.StatusNotFound, "Lead not found")
		}
		return internalError(c, err, "Failed to update lead")
	}
	return c.JSON(dto.MessageResponse{Message: "Lead updated"})
}

func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid lead id")
	}

	if err := h.leadService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrLeadNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Lead not found")
		}
		return internalError(c, err, "Failed to delete lead")
	}
	return c.JSON(dto.MessageResponse{Message: "Lead deleted"})
}

func toLeadResponse(l *models.Lead) dto.LeadResponse {
	resp := dto.LeadResponse{
		ID:         l.ID,
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Message:    l.Message,
		Status:     l.Status,
		PropertyID: l.PropertyID,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if l.Property != nil {
		resp.Property = &dto.LeadProperty{ID: l.Property.ID, Title: l.Property.Title}
	}
	return resp
}
