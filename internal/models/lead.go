package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeadStatusNew       = "NEW"
	LeadStatusContacted = "CONTACTED"
	LeadStatusClosed    = "CLOSED"
	LeadStatusSpam      = "SPAM"
)

func IsValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusClosed, LeadStatusSpam:
		return true
	}
	return false
}

// Lead is an inquiry from a prospective client. Visitors create leads without
// an account, so there is no user reference.
type Lead struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Email      string     `gorm:"size:255;not null" json:"email"`
	Phone      string     `gorm:"size:50" json:"phone"`
	Message    string     `gorm:"type:text" json:"message"`
	Status     string     `gorm:"size:20;not null;default:'NEW';index" json:"status"`
	PropertyID *uuid.UUID `gorm:"type:uuid;index" json:"propertyId"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL" json:"property,omitempty"`
}
