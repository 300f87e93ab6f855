package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/metrics"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

type LeadStore interface {
	Create(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type LeadService struct {
	leads      LeadStore
	properties PropertyStore
	screen     *LeadScreen
}

func NewLeadService(leads LeadStore, properties PropertyStore, screen *LeadScreen) *LeadService {
	if screen == nil {
		screen = NewLeadScreen()
	}
	return &LeadService{leads: leads, properties: properties, screen: screen}
}

// Create records an inquiry. An empty propertyId is a general inquiry.
// Messages caught by the spam screen are stored with status SPAM.
func (s *LeadService) Create(ctx context.Context, req *dto.CreateLeadRequest) (*models.Lead, error) {
	var propertyID *uuid.UUID
	if raw := strings.TrimSpace(req.PropertyID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidID
		}
		ok, err := s.properties.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to look up property: %w", err)
		}
		if !ok {
			return nil, ErrPropertyNotFound
		}
		propertyID = &id
	}

	lead := models.Lead{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		Email:      normalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Message:    req.Message,
		Status:     models.LeadStatusNew,
		PropertyID: propertyID,
	}
	if reason := s.screen.Check(req.Name + "\n" + req.Message); reason != "" {
		lead.Status = models.LeadStatusSpam
		slog.Info("lead flagged as spam", "lead_id", lead.ID, "reason", reason)
	}

	if err := s.leads.Create(ctx, &lead); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	metrics.RecordLead(lead.Status)
	return &lead, nil
}

func (s *LeadService) List(ctx context.Context) ([]models.Lead, error) {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return leads, nil
}

func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !models.IsValidLeadStatus(status) {
		return ErrInvalidLeadStatus
	}
	if err := s.leads.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return nil
}

func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}

func (s *LeadService) Count(ctx context.Context) (int64, error) {
	return s.leads.Count(ctx)
}
