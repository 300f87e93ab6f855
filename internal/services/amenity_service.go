package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/google/uuid"
)

var ErrAmenityExists = errors.New("amenity already exists")

type AmenityStore interface {
	List(ctx context.Context) ([]models.Amenity, error)
	Create(ctx context.Context, amenity *models.Amenity) error
}

type AmenityService struct {
	amenities AmenityStore
}

func NewAmenityService(amenities AmenityStore) *AmenityService {
	return &AmenityService{amenities: amenities}
}

func (s *AmenityService) List(ctx context.Context) ([]models.Amenity, error) {
	amenities, err := s.amenities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	if amenities == nil {
		amenities = []models.Amenity{}
	}
	return amenities, nil
}

func (s *AmenityService) Create(ctx context.Context, req *dto.CreateAmenityRequest) (*models.Amenity, error) {
	amenity := models.Amenity{
		ID:   uuid.New(),
		Name: strings.TrimSpace(req.Name),
		Icon: strings.TrimSpace(req.Icon),
	}
	if err := s.amenities.Create(ctx, &amenity); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAmenityExists
		}
		return nil, fmt.Errorf("failed to create amenity: %w", err)
	}
	return &amenity, nil
}
