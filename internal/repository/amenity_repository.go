package repository

import (
	"context"

	"github.com/bproperties/property-backend/internal/models"
	"gorm.io/gorm"
)

type AmenityRepository struct {
	db *gorm.DB
}

func NewAmenityRepository(db *gorm.DB) *AmenityRepository {
	return &AmenityRepository{db: db}
}

func (r *AmenityRepository) List(ctx context.Context) ([]models.Amenity, error) {
	var amenities []models.Amenity
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}

func (r *AmenityRepository) Create(ctx context.Context, amenity *models.Amenity) error {
	return translate(r.db.WithContext(ctx).Create(amenity).Error)
}
