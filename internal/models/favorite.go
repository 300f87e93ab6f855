package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property" json:"userId"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property;index" json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property"`
}
