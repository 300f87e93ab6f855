package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bproperties/property-backend/internal/cache"
	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/metrics"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/google/uuid"
)

const propertyCacheNamespace = "properties"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrUnknownAmenity   = errors.New("unknown amenity")
	ErrInvalidID        = errors.New("invalid id")
)

type PropertyStore interface {
	List(ctx context.Context, f repository.PropertyFilter) ([]models.Property, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, property *models.Property, amenityIDs []uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, upd repository.PropertyUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PropertyService struct {
	properties PropertyStore
	users      UserStore
	cache      cache.Cache
}

func NewPropertyService(properties PropertyStore, users UserStore, c cache.Cache) *PropertyService {
	if c == nil {
		c = cache.Noop{}
	}
	return &PropertyService{properties: properties, users: users, cache: c}
}

// List returns every property matching f with media and amenities loaded.
// Results are served from the query cache when possible.
func (s *PropertyService) List(ctx context.Context, f repository.PropertyFilter) ([]models.Property, error) {
	gen, err := s.cache.Generation(ctx, propertyCacheNamespace)
	if err != nil {
		slog.Warn("property cache generation read failed", "error", err)
		return s.list(ctx, f)
	}
	key := f.CacheKey(propertyCacheNamespace + ":" + strconv.FormatInt(gen, 10))

	var cached []models.Property
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("property cache read failed", "key", key, "error", err)
	}
	metrics.RecordCacheLookup(propertyCacheNamespace, hit)
	if hit {
		return cached, nil
	}

	properties, err := s.list(ctx, f)
	if err != nil {
		return nil, err
	}

	// A write that finished during the query bumped the generation, so this
	// entry lands under a key nobody reads again.
	if err := s.cache.Set(ctx, key, properties); err != nil {
		slog.Warn("property cache write failed", "key", key, "error", err)
	}
	return properties, nil
}

func (s *PropertyService) list(ctx context.Context, f repository.PropertyFilter) ([]models.Property, error) {
	properties, err := s.properties.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}

func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return property, nil
}

// Create stores a new listing. The agent defaults to the caller when the
// request does not name one.
func (s *PropertyService) Create(ctx context.Context, callerID uuid.UUID, req *dto.CreatePropertyRequest) (*models.Property, error) {
	agentID := callerID
	if strings.TrimSpace(req.AgentID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(req.AgentID))
		if err != nil {
			return nil, ErrAgentNotFound
		}
		agentID = id
	}
	if err := s.ensureAgent(ctx, agentID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusAvailable
	}

	property := models.Property{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       float64(req.Price),
		Type:        normalizeType(req.Type),
		Status:      status,
		SizeSqm:     req.SizeSqm,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Parking:     req.Parking,
		UnitTypes:   req.UnitTypes,
		City:        strings.TrimSpace(req.City),
		Area:        strings.TrimSpace(req.Area),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AgentID:     agentID,
		Media:       buildMedia(req.Media),
	}

	if err := s.properties.Create(ctx, &property, uniqueIDs(req.Amenities)); err != nil {
		return nil, s.writeError(err)
	}
	s.invalidate(ctx)
	return s.Get(ctx, property.ID)
}

// Update changes the supplied fields. A media list, when given, replaces all
// existing media of the listing.
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePropertyRequest) (*models.Property, error) {
	fields := make(map[string]interface{})
	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = strings.TrimSpace(*v)
		}
	}
	setString("title", req.Title)
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = float64(*req.Price)
	}
	if req.Type != nil {
		fields["type"] = normalizeType(*req.Type)
	}
	setString("status", req.Status)
	setString("city", req.City)
	setString("area", req.Area)
	setString("unit_types", req.UnitTypes)
	if req.SizeSqm != nil {
		fields["size_sqm"] = *req.SizeSqm
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		fields["bathrooms"] = *req.Bathrooms
	}
	if req.Parking != nil {
		fields["parking"] = *req.Parking
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.AgentID != nil && strings.TrimSpace(*req.AgentID) != "" {
		agentID, err := uuid.Parse(strings.TrimSpace(*req.AgentID))
		if err != nil {
			return nil, ErrAgentNotFound
		}
		if err := s.ensureAgent(ctx, agentID); err != nil {
			return nil, err
		}
		fields["agent_id"] = agentID
	}

	upd := repository.PropertyUpdate{Fields: fields}
	if req.Media != nil {
		upd.Media = buildMedia(req.Media)
	}
	if req.Amenities != nil {
		upd.AmenityIDs = uniqueIDs(req.Amenities)
	}

	if err := s.properties.Update(ctx, id, upd); err != nil {
		return nil, s.writeError(err)
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		return s.writeError(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *PropertyService) Count(ctx context.Context) (int64, error) {
	return s.properties.Count(ctx)
}

// ensureAgent checks that id names a user allowed to own listings.
func (s *PropertyService) ensureAgent(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAgentNotFound
		}
		return fmt.Errorf("failed to look up agent: %w", err)
	}
	if user.Role != models.RoleAgent && user.Role != models.RoleAdmin {
		return ErrAgentNotFound
	}
	return nil
}

func (s *PropertyService) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx, propertyCacheNamespace); err != nil {
		slog.Warn("property cache generation bump failed", "error", err)
	}
	if err := s.cache.Invalidate(ctx, propertyCacheNamespace+":"); err != nil {
		slog.Warn("property cache invalidation failed", "error", err)
	}
}

func (s *PropertyService) writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUnknownAmenity):
		return ErrUnknownAmenity
	case errors.Is(err, repository.ErrUnknownAgent):
		return ErrAgentNotFound
	case errors.Is(err, repository.ErrNotFound):
		return ErrPropertyNotFound
	}
	return fmt.Errorf("failed to write property: %w", err)
}

func buildMedia(items []dto.MediaRequest) []models.PropertyMedia {
	media := make([]models.PropertyMedia, 0, len(items))
	for _, m := range items {
		mediaType := m.Type
		if mediaType == "" {
			mediaType = models.MediaImage
		}
		media = append(media, models.PropertyMedia{
			ID:   uuid.New(),
			URL:  strings.TrimSpace(m.URL),
			Type: mediaType,
		})
	}
	return media
}

func normalizeType(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
