package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// FlexFloat accepts a JSON number or a numeric string. The mobile client sends
// prices as strings.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

type MediaRequest struct {
	URL  string `json:"url" validate:"required,max=2048"`
	Type string `json:"type" validate:"omitempty,oneof=IMAGE VIDEO"`
}

type CreatePropertyRequest struct {
	Title       string         `json:"title" validate:"required,max=255"`
	Description string         `json:"description"`
	Price       FlexFloat      `json:"price" validate:"gte=0"`
	Type        string         `json:"type" validate:"required,max=50"`
	Status      string         `json:"status" validate:"omitempty,oneof=AVAILABLE SOLD RENTED"`
	SizeSqm     *float64       `json:"sizeSqm" validate:"omitempty,gte=0"`
	Bedrooms    *int           `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms   *int           `json:"bathrooms" validate:"omitempty,gte=0"`
	Parking     *int           `json:"parking" validate:"omitempty,gte=0"`
	UnitTypes   *string        `json:"unitTypes" validate:"omitempty,max=255"`
	City        string         `json:"city" validate:"max=120"`
	Area        string         `json:"area" validate:"max=120"`
	Latitude    *float64       `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64       `json:"longitude" validate:"omitempty,longitude"`
	AgentID     string         `json:"agentId"`
	Amenities   []uuid.UUID    `json:"amenities"`
	Media       []MediaRequest `json:"media" validate:"omitempty,dive"`
}

// UpdatePropertyRequest fields left nil are not changed. A non-nil Media or
// Amenities list replaces the existing one entirely.
type UpdatePropertyRequest struct {
	Title       *string        `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string        `json:"description"`
	Price       *FlexFloat     `json:"price" validate:"omitempty,gte=0"`
	Type        *string        `json:"type" validate:"omitempty,min=1,max=50"`
	Status      *string        `json:"status" validate:"omitempty,oneof=AVAILABLE SOLD RENTED"`
	SizeSqm     *float64       `json:"sizeSqm" validate:"omitempty,gte=0"`
	Bedrooms    *int           `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms   *int           `json:"bathrooms" validate:"omitempty,gte=0"`
	Parking     *int           `json:"parking" validate:"omitempty,gte=0"`
	UnitTypes   *string        `json:"unitTypes" validate:"omitempty,max=255"`
	City        *string        `json:"city" validate:"omitempty,max=120"`
	Area        *string        `json:"area" validate:"omitempty,max=120"`
	Latitude    *float64       `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64       `json:"longitude" validate:"omitempty,longitude"`
	AgentID     *string        `json:"agentId"`
	Amenities   []uuid.UUID    `json:"amenities"`
	Media       []MediaRequest `json:"media" validate:"omitempty,dive"`
}

type CreateAmenityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"max=100"`
}
