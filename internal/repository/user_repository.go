package repository

import (
	"context"
	"time"

	"github.com/bproperties/property-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSummary is a user row with listing and lead counts.
type UserSummary struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Role          string
	Phone         string
	CreatedAt     time.Time
	PropertyCount int64
	LeadCount     int64
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ListSummaries returns every user, newest first. Leads are attributed to the
// agent owning the lead's property.
func (r *UserRepository) ListSummaries(ctx context.Context) ([]UserSummary, error) {
	var rows []UserSummary
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.id, users.name, users.email, users.role, users.phone, users.created_at,
			(SELECT COUNT(*) FROM properties WHERE properties.agent_id = users.id) AS property_count,
			(SELECT COUNT(*) FROM leads JOIN properties ON properties.id = leads.property_id
				WHERE properties.agent_id = users.id) AS lead_count`).
		Order("users.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if len(fields) == 0 {
			return nil
		}
		return translate(tx.Model(&user).Updates(fields).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and their favorites.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func (r *UserRepository) CountProperties(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Property{}).Where("agent_id = ?", id).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
