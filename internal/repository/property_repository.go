package repository

import (
	"context"
	"fmt"

	"github.com/bproperties/property-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyUpdate describes a partial update. Nil Media or AmenityIDs leave the
// corresponding association untouched; an empty non-nil slice clears it.
type PropertyUpdate struct {
	Fields     map[string]interface{}
	Media      []models.PropertyMedia
	AmenityIDs []uuid.UUID
}

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) List(ctx context.Context, f PropertyFilter) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Scopes(f.Scopes()...).
		Preload("Media").
		Preload("Amenities").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Agent", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone", "role")
		}).
		Preload("Media").
		Preload("Amenities").
		First(&property, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &property, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Property{}).Count(&count).Error
	return count, err
}

// Create inserts the property with its media and links the given amenities.
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property, amenityIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Amenities", "Agent").Create(property).Error; err != nil {
			return translateRef(err, ErrUnknownAgent)
		}
		if len(amenityIDs) == 0 {
			return nil
		}
		amenities, err := findAmenities(tx, amenityIDs)
		if err != nil {
			return err
		}
		return tx.Model(property).Association("Amenities").Append(amenities)
	})
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

// Update applies upd in a single transaction. Media are replaced wholesale:
// every existing row is deleted before the new list is inserted.
func (r *PropertyRepository) Update(ctx context.Context, id uuid.UUID, upd PropertyUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Select("id").First(&property, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		if len(upd.Fields) > 0 {
			if err := tx.Model(&property).Updates(upd.Fields).Error; err != nil {
				return translateRef(err, ErrUnknownAgent)
			}
		}

		if upd.Media != nil {
			if err := tx.Where("property_id = ?", id).Delete(&models.PropertyMedia{}).Error; err != nil {
				return err
			}
			if len(upd.Media) > 0 {
				for i := range upd.Media {
					upd.Media[i].PropertyID = id
				}
				if err := tx.Create(&upd.Media).Error; err != nil {
					return err
				}
			}
		}

		if upd.AmenityIDs != nil {
			assoc := tx.Model(&property).Association("Amenities")
			if len(upd.AmenityIDs) == 0 {
				return assoc.Clear()
			}
			amenities, err := findAmenities(tx, upd.AmenityIDs)
			if err != nil {
				return err
			}
			return assoc.Replace(amenities)
		}
		return nil
	})
}

// Delete removes the property and every dependent row. Leads survive with
// their property reference cleared.
func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Select("id").First(&property, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&property).Association("Amenities").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&models.Lead{}).Where("property_id = ?", id).Update("property_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
}

func findAmenities(tx *gorm.DB, ids []uuid.UUID) ([]models.Amenity, error) {
	var amenities []models.Amenity
	if err := tx.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		return nil, err
	}
	if len(amenities) != len(ids) {
		return nil, ErrUnknownAmenity
	}
	return amenities, nil
}
