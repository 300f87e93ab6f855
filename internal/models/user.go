package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "ADMIN"
	RoleAgent  = "AGENT"
	RoleEditor = "EDITOR"
	RoleUser   = "USER"
)

// StaffRoles may manage listings and read leads.
var StaffRoles = []string{RoleAdmin, RoleAgent, RoleEditor}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAgent, RoleEditor, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'USER'" json:"role"`
	Phone     string    `gorm:"size:50" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Properties []Property `gorm:"foreignKey:AgentID" json:"-"`
}
