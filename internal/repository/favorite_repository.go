package repository

import (
	"context"

	"github.com/bproperties/property-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle flips membership of (userID, propertyID) and reports whether the
// pair is a favorite afterwards. The delete-or-insert runs in one transaction
// and the insert ignores a concurrent duplicate, so two racing toggles never
// fail on the unique index.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND property_id = ?", userID, propertyID).Delete(&models.Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			added = false
			return nil
		}

		favorite := models.Favorite{
			ID:         uuid.New(),
			UserID:     userID,
			PropertyID: propertyID,
		}
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&favorite).Error; err != nil {
			return translateRef(err, ErrNotFound)
		}
		added = true
		return nil
	})
	return added, err
}

// ListProperties returns the user's favorited properties with media, most
// recently favorited first.
func (r *FavoriteRepository) ListProperties(ctx context.Context, userID uuid.UUID) ([]models.Property, error) {
	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Property.Media").
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	properties := make([]models.Property, 0, len(favorites))
	for _, f := range favorites {
		properties = append(properties, f.Property)
	}
	return properties, nil
}
