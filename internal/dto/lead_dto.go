package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	PropertyID string `json:"propertyId"`
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"max=50"`
	Message    string `json:"message" validate:"max=5000"`
}

// CreateLeadResponse carries status so the mobile client can confirm receipt.
type CreateLeadResponse struct {
	ID         uuid.UUID  `json:"id"`
	Status     string     `json:"status"`
	PropertyID *uuid.UUID `json:"propertyId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW CONTACTED CLOSED SPAM"`
}

type LeadProperty struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type LeadResponse struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Message    string        `json:"message"`
	Status     string        `json:"status"`
	PropertyID *uuid.UUID    `json:"propertyId"`
	Property   *LeadProperty `json:"property"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type ToggleFavoriteRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type ToggleFavoriteResponse struct {
	Message    string `json:"message"`
	IsFavorite bool   `json:"isFavorite"`
}
