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

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserHasListings = errors.New("user still owns property listings")
)

type UserService struct {
	users      UserStore
	properties PropertyStore
	leads      LeadStore
	hasher     *PasswordHasher
}

func NewUserService(users UserStore, properties PropertyStore, leads LeadStore, hasher *PasswordHasher) *UserService {
	return &UserService{users: users, properties: properties, leads: leads, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserSummaryResponse, error) {
	rows, err := s.users.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]dto.UserSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserSummaryResponse{
			ID:        r.ID,
			Name:      r.Name,
			Email:     r.Email,
			Role:      r.Role,
			Phone:     r.Phone,
			CreatedAt: r.CreatedAt,
			Count:     dto.UserCounts{Properties: r.PropertyCount, Leads: r.LeadCount},
		})
	}
	return out, nil
}

// Create adds a staff account. The role defaults to AGENT.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleAgent
	}
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: hash,
		Role:     role,
		Phone:    strings.TrimSpace(req.Phone),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		fields["email"] = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*req.Role))
		if !models.IsValidRole(role) {
			return nil, ErrInvalidRole
		}
		fields["role"] = role
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}

	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user who owns no listings.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	owned, err := s.users.CountProperties(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count listings: %w", err)
	}
	if owned > 0 {
		return ErrUserHasListings
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) Metrics(ctx context.Context) (*dto.MetricsResponse, error) {
	properties, err := s.properties.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	leads, err := s.leads.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}
	agents, err := s.users.CountByRole(ctx, models.RoleAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to count agents: %w", err)
	}
	return &dto.MetricsResponse{
		TotalProperties: properties,
		TotalLeads:      leads,
		TotalAgents:     agents,
	}, nil
}
