package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAvailable = "AVAILABLE"
	StatusSold      = "SOLD"
	StatusRented    = "RENTED"

	MediaImage = "IMAGE"
	MediaVideo = "VIDEO"
)

type Property struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;index" json:"price"`
	Type        string    `gorm:"size:50;not null;index" json:"type"`
	Status      string    `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	SizeSqm     *float64  `json:"sizeSqm"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	Parking     *int      `json:"parking"`
	UnitTypes   *string   `gorm:"size:255" json:"unitTypes"`
	City        string    `gorm:"size:120;index" json:"city"`
	Area        string    `gorm:"size:120" json:"area"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	AgentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"agentId"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Agent     *User           `gorm:"foreignKey:AgentID;constraint:OnDelete:RESTRICT" json:"agent,omitempty"`
	Media     []PropertyMedia `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"media"`
	Amenities []Amenity       `gorm:"many2many:property_amenities;constraint:OnDelete:CASCADE" json:"amenities"`
}

type PropertyMedia struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"propertyId"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	Type       string    `gorm:"size:10;not null;default:'IMAGE'" json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (PropertyMedia) TableName() string {
	return "property_media"
}

type Amenity struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Icon      string    `gorm:"size:100" json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
