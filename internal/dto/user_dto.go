package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN AGENT EDITOR USER"`
	Phone    string `json:"phone" validate:"max=50"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN AGENT EDITOR USER"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

type UserCounts struct {
	Properties int64 `json:"properties"`
	Leads      int64 `json:"leads"`
}

type UserSummaryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"createdAt"`
	Count     UserCounts `json:"_count"`
}

type MetricsResponse struct {
	TotalProperties int64 `json:"totalProperties"`
	TotalLeads      int64 `json:"totalLeads"`
	TotalAgents     int64 `json:"totalAgents"`
}
