package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bproperties/property-backend/internal/metrics"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/google/uuid"
)

type FavoriteStore interface {
	Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListProperties(ctx context.Context, userID uuid.UUID) ([]models.Property, error)
}

type FavoriteService struct {
	favorites  FavoriteStore
	properties PropertyStore
}

func NewFavoriteService(favorites FavoriteStore, properties PropertyStore) *FavoriteService {
	return &FavoriteService{favorites: favorites, properties: properties}
}

// Toggle adds the property to the user's favorites, or removes it when it is
// already there. It reports whether the property is a favorite afterwards.
func (s *FavoriteService) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	ok, err := s.properties.Exists(ctx, propertyID)
	if err != nil {
		return false, fmt.Errorf("failed to look up property: %w", err)
	}
	if !ok {
		return false, ErrPropertyNotFound
	}

	added, err := s.favorites.Toggle(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrPropertyNotFound
		}
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	metrics.RecordFavoriteToggle(added)
	return added, nil
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Property, error) {
	properties, err := s.favorites.ListProperties(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}
