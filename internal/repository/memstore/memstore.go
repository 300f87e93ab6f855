// Package memstore provides in-memory implementations of the repository
// stores. They honour the same uniqueness and cascade rules as the GORM
// stores and are used by service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/google/uuid"
)

// DB is the shared in-memory dataset backing every store.
type DB struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	properties map[uuid.UUID]*models.Property
	media      map[uuid.UUID]*models.PropertyMedia
	amenities  map[uuid.UUID]*models.Amenity
	links      map[uuid.UUID]map[uuid.UUID]bool // property -> amenity
	leads      map[uuid.UUID]*models.Lead
	favorites  map[uuid.UUID]*models.Favorite
	clock      time.Time
}

func New() *DB {
	return &DB{
		users:      make(map[uuid.UUID]*models.User),
		properties: make(map[uuid.UUID]*models.Property),
		media:      make(map[uuid.UUID]*models.PropertyMedia),
		amenities:  make(map[uuid.UUID]*models.Amenity),
		links:      make(map[uuid.UUID]map[uuid.UUID]bool),
		leads:      make(map[uuid.UUID]*models.Lead),
		favorites:  make(map[uuid.UUID]*models.Favorite),
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// now returns a strictly increasing timestamp so ordering is deterministic.
func (db *DB) now() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

// MediaCount returns the number of media rows referencing propertyID.
func (db *DB) MediaCount(propertyID uuid.UUID) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, m := range db.media {
		if m.PropertyID == propertyID {
			n++
		}
	}
	return n
}

func (db *DB) Users() *UserStore         { return &UserStore{db: db} }
func (db *DB) Properties() *PropertyStore { return &PropertyStore{db: db} }
func (db *DB) Leads() *LeadStore         { return &LeadStore{db: db} }
func (db *DB) Favorites() *FavoriteStore { return &FavoriteStore{db: db} }
func (db *DB) Amenities() *AmenityStore  { return &AmenityStore{db: db} }

// --- users ---

type UserStore struct{ db *DB }

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = s.db.now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	s.db.users[user.ID] = &cp
	return nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) ListSummaries(_ context.Context) ([]repository.UserSummary, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]repository.UserSummary, 0, len(s.db.users))
	for _, u := range s.db.users {
		sum := repository.UserSummary{
			ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Phone: u.Phone, CreatedAt: u.CreatedAt,
		}
		for _, p := range s.db.properties {
			if p.AgentID != u.ID {
				continue
			}
			sum.PropertyCount++
			for _, l := range s.db.leads {
				if l.PropertyID != nil && *l.PropertyID == p.ID {
					sum.LeadCount++
				}
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *UserStore) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if email, ok := fields["email"].(string); ok {
		for _, other := range s.db.users {
			if other.ID != id && other.Email == email {
				return nil, repository.ErrDuplicate
			}
		}
		u.Email = email
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["role"].(string); ok {
		u.Role = v
	}
	if v, ok := fields["phone"].(string); ok {
		u.Phone = v
	}
	if v, ok := fields["password"].(string); ok {
		u.Password = v
	}
	u.UpdatedAt = s.db.now()
	cp := *u
	return &cp, nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	for fid, f := range s.db.favorites {
		if f.UserID == id {
			delete(s.db.favorites, fid)
		}
	}
	delete(s.db.users, id)
	return nil
}

func (s *UserStore) CountProperties(_ context.Context, id uuid.UUID) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for _, p := range s.db.properties {
		if p.AgentID == id {
			n++
		}
	}
	return n, nil
}

func (s *UserStore) CountByRole(_ context.Context, role string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for _, u := range s.db.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// --- amenities ---

type AmenityStore struct{ db *DB }

func (s *AmenityStore) List(_ context.Context) ([]models.Amenity, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Amenity, 0, len(s.db.amenities))
	for _, a := range s.db.amenities {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *AmenityStore) Create(_ context.Context, amenity *models.Amenity) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, a := range s.db.amenities {
		if a.Name == amenity.Name {
			return repository.ErrDuplicate
		}
	}
	if amenity.ID == uuid.Nil {
		amenity.ID = uuid.New()
	}
	amenity.CreatedAt = s.db.now()
	cp := *amenity
	s.db.amenities[amenity.ID] = &cp
	return nil
}
