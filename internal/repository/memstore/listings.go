package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/google/uuid"
)

type PropertyStore struct{ db *DB }

// hydrate copies p with its media and amenities attached. Caller holds the lock.
func (db *DB) hydrate(p *models.Property, withAgent bool) models.Property {
	out := *p
	out.Media = []models.PropertyMedia{}
	for _, m := range db.media {
		if m.PropertyID == p.ID {
			out.Media = append(out.Media, *m)
		}
	}
	sort.Slice(out.Media, func(i, j int) bool { return out.Media[i].CreatedAt.Before(out.Media[j].CreatedAt) })

	out.Amenities = []models.Amenity{}
	for aid := range db.links[p.ID] {
		if a, ok := db.amenities[aid]; ok {
			out.Amenities = append(out.Amenities, *a)
		}
	}
	sort.Slice(out.Amenities, func(i, j int) bool { return out.Amenities[i].Name < out.Amenities[j].Name })

	out.Agent = nil
	if withAgent {
		if u, ok := db.users[p.AgentID]; ok {
			out.Agent = &models.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
		}
	}
	return out
}

func (s *PropertyStore) List(_ context.Context, f repository.PropertyFilter) ([]models.Property, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Property{}
	for _, p := range s.db.properties {
		if f.Matches(p) {
			out = append(out, s.db.hydrate(p, false))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *PropertyStore) FindByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := s.db.hydrate(p, true)
	return &out, nil
}

func (s *PropertyStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.properties[id]
	return ok, nil
}

func (s *PropertyStore) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.db.properties)), nil
}

func (s *PropertyStore) Create(_ context.Context, property *models.Property, amenityIDs []uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[property.AgentID]; !ok {
		return repository.ErrUnknownAgent
	}
	if err := s.db.checkAmenities(amenityIDs); err != nil {
		return err
	}
	if property.ID == uuid.Nil {
		property.ID = uuid.New()
	}
	if property.Status == "" {
		property.Status = models.StatusAvailable
	}
	property.CreatedAt = s.db.now()
	property.UpdatedAt = property.CreatedAt

	stored := *property
	stored.Media, stored.Amenities, stored.Agent = nil, nil, nil
	s.db.properties[property.ID] = &stored
	for i := range property.Media {
		s.db.addMedia(property.ID, &property.Media[i])
	}
	s.db.links[property.ID] = make(map[uuid.UUID]bool)
	for _, aid := range amenityIDs {
		s.db.links[property.ID][aid] = true
	}
	return nil
}

func (s *PropertyStore) Update(_ context.Context, id uuid.UUID, upd repository.PropertyUpdate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.properties[id]
	if !ok {
		return repository.ErrNotFound
	}
	if upd.AmenityIDs != nil {
		if err := s.db.checkAmenities(upd.AmenityIDs); err != nil {
			return err
		}
	}
	if agentID, ok := upd.Fields["agent_id"].(uuid.UUID); ok {
		if _, ok := s.db.users[agentID]; !ok {
			return repository.ErrUnknownAgent
		}
	}

	applyFields(p, upd.Fields)
	p.UpdatedAt = s.db.now()

	if upd.Media != nil {
		for mid, m := range s.db.media {
			if m.PropertyID == id {
				delete(s.db.media, mid)
			}
		}
		for i := range upd.Media {
			s.db.addMedia(id, &upd.Media[i])
		}
	}
	if upd.AmenityIDs != nil {
		s.db.links[id] = make(map[uuid.UUID]bool)
		for _, aid := range upd.AmenityIDs {
			s.db.links[id][aid] = true
		}
	}
	return nil
}

func (s *PropertyStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.properties[id]; !ok {
		return repository.ErrNotFound
	}
	for mid, m := range s.db.media {
		if m.PropertyID == id {
			delete(s.db.media, mid)
		}
	}
	for fid, f := range s.db.favorites {
		if f.PropertyID == id {
			delete(s.db.favorites, fid)
		}
	}
	for _, l := range s.db.leads {
		if l.PropertyID != nil && *l.PropertyID == id {
			l.PropertyID = nil
		}
	}
	delete(s.db.links, id)
	delete(s.db.properties, id)
	return nil
}

func (db *DB) addMedia(propertyID uuid.UUID, m *models.PropertyMedia) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.PropertyID = propertyID
	m.CreatedAt = db.now()
	cp := *m
	db.media[m.ID] = &cp
}

func (db *DB) checkAmenities(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := db.amenities[id]; !ok {
			return repository.ErrUnknownAmenity
		}
	}
	return nil
}

func applyFields(p *models.Property, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "title":
			p.Title = v.(string)
		case "description":
			p.Description = v.(string)
		case "price":
			p.Price = v.(float64)
		case "type":
			p.Type = v.(string)
		case "status":
			p.Status = v.(string)
		case "city":
			p.City = v.(string)
		case "area":
			p.Area = v.(string)
		case "size_sqm":
			p.SizeSqm = floatPtr(v)
		case "bedrooms":
			p.Bedrooms = intPtr(v)
		case "bathrooms":
			p.Bathrooms = intPtr(v)
		case "parking":
			p.Parking = intPtr(v)
		case "unit_types":
			s := v.(string)
			p.UnitTypes = &s
		case "latitude":
			p.Latitude = floatPtr(v)
		case "longitude":
			p.Longitude = floatPtr(v)
		case "agent_id":
			p.AgentID = v.(uuid.UUID)
		}
	}
}

func floatPtr(v interface{}) *float64 {
	f := v.(float64)
	return &f
}

func intPtr(v interface{}) *int {
	n := v.(int)
	return &n
}

// --- leads ---

type LeadStore struct{ db *DB }

func (s *LeadStore) Create(_ context.Context, lead *models.Lead) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if lead.PropertyID != nil {
		if _, ok := s.db.properties[*lead.PropertyID]; !ok {
			return fmt.Errorf("property: %w", repository.ErrNotFound)
		}
	}
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	lead.CreatedAt = s.db.now()
	lead.UpdatedAt = lead.CreatedAt
	cp := *lead
	cp.Property = nil
	s.db.leads[lead.ID] = &cp
	return nil
}

func (s *LeadStore) List(_ context.Context) ([]models.Lead, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Lead, 0, len(s.db.leads))
	for _, l := range s.db.leads {
		cp := *l
		if l.PropertyID != nil {
			if p, ok := s.db.properties[*l.PropertyID]; ok {
				cp.Property = &models.Property{ID: p.ID, Title: p.Title}
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *LeadStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	l, ok := s.db.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = s.db.now()
	return nil
}

func (s *LeadStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.db.leads, id)
	return nil
}

func (s *LeadStore) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.db.leads)), nil
}

// --- favorites ---

type FavoriteStore struct{ db *DB }

func (s *FavoriteStore) Toggle(_ context.Context, userID, propertyID uuid.UUID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for fid, f := range s.db.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			delete(s.db.favorites, fid)
			return false, nil
		}
	}
	if _, ok := s.db.properties[propertyID]; !ok {
		return false, fmt.Errorf("property: %w", repository.ErrNotFound)
	}
	fav := &models.Favorite{ID: uuid.New(), UserID: userID, PropertyID: propertyID, CreatedAt: s.db.now()}
	s.db.favorites[fav.ID] = fav
	return true, nil
}

func (s *FavoriteStore) ListProperties(_ context.Context, userID uuid.UUID) ([]models.Property, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	favs := make([]*models.Favorite, 0)
	for _, f := range s.db.favorites {
		if f.UserID == userID {
			favs = append(favs, f)
		}
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].CreatedAt.After(favs[j].CreatedAt) })

	out := make([]models.Property, 0, len(favs))
	for _, f := range favs {
		if p, ok := s.db.properties[f.PropertyID]; ok {
			out = append(out, s.db.hydrate(p, false))
		}
	}
	return out, nil
}
