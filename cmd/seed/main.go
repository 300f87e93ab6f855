// Command seed loads a default agent, the standard amenities and sample
// listings. Running it twice is safe: existing rows are left untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bproperties/property-backend/internal/config"
	"github.com/bproperties/property-backend/internal/database"
	"github.com/bproperties/property-backend/internal/logging"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/bproperties/property-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	agentEmail    = "agent@bproperties.com"
	agentPassword = "password123"
)

var defaultAmenities = []models.Amenity{
	{Name: "Swimming Pool", Icon: "pool"},
	{Name: "Gym", Icon: "fitness"},
	{Name: "Parking", Icon: "car"},
	{Name: "24/7 Security", Icon: "shield"},
	{Name: "Generator Backup", Icon: "flash"},
	{Name: "Elevator", Icon: "elevator"},
	{Name: "Rooftop Garden", Icon: "leaf"},
	{Name: "Children's Play Area", Icon: "happy"},
}

// sample is used when no image folders are found under IMAGES_DIR/properties.
type sample struct {
	Title, Type, City, Area string
	Price                   float64
	Bedrooms, Bathrooms     int
	Images                  []string
}

var samples = []sample{
	{"Lakeside Villa", "VILLA", "Dhaka", "Gulshan", 2890000, 5, 4, []string{"lakeside-villa/1.jpg", "lakeside-villa/2.jpg"}},
	{"Skyline Apartment", "APARTMENT", "Dhaka", "Banani", 950000, 3, 2, []string{"skyline-apartment/1.jpg"}},
	{"Garden House", "HOUSE", "Chattogram", "Khulshi", 1450000, 4, 3, []string{"garden-house/1.jpg"}},
	{"Harbour Condo", "CONDO", "Chattogram", "Agrabad", 620000, 2, 2, []string{"harbour-condo/1.jpg"}},
}

var imageExt = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)$`)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	baseURL := flag.String("base-url", "http://localhost:"+cfg.Port, "public URL prefix for media")
	flag.Parse()

	connect := func() (*gorm.DB, error) { return database.Connect(cfg) }
	if err := seed(context.Background(), connect, cfg, strings.TrimRight(*baseURL, "/")); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seeding completed")
}

// seed owns the connection for the whole run and closes it on every path.
func seed(ctx context.Context, connect func() (*gorm.DB, error), cfg *config.Config, baseURL string) error {
	db, err := connect()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return run(ctx, db, cfg, baseURL)
}

func run(ctx context.Context, db *gorm.DB, cfg *config.Config, baseURL string) error {
	agent, err := ensureAgent(ctx, repository.NewUserRepository(db), services.NewPasswordHasher(cfg.BcryptCost))
	if err != nil {
		return err
	}

	amenityIDs, err := ensureAmenities(ctx, db)
	if err != nil {
		return err
	}

	listings, err := discover(filepath.Join(cfg.ImagesDir, "properties"))
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		slog.Info("no property image folders found, using built-in samples", "dir", cfg.ImagesDir)
		listings = samples
	}

	properties := repository.NewPropertyRepository(db)
	for _, s := range listings {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Property{}).Where("title = ?", s.Title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			slog.Info("skipping existing property", "title", s.Title)
			continue
		}

		property := build(s, agent.ID, baseURL)
		if err := properties.Create(ctx, &property, pickAmenities(s.Title, amenityIDs)); err != nil {
			return fmt.Errorf("create %q: %w", s.Title, err)
		}
		slog.Info("created property", "title", s.Title, "images", len(s.Images))
	}
	return nil
}

func ensureAgent(ctx context.Context, users *repository.UserRepository, hasher *services.PasswordHasher) (*models.User, error) {
	agent, err := users.FindByEmail(ctx, agentEmail)
	if err == nil {
		return agent, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := hasher.Hash(agentPassword)
	if err != nil {
		return nil, err
	}
	agent = &models.User{
		ID:       uuid.New(),
		Name:     "Agent Smith",
		Email:    agentEmail,
		Password: hash,
		Role:     models.RoleAgent,
		Phone:    "+1 555 0199",
	}
	if err := users.Create(ctx, agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	slog.Info("created default agent", "email", agentEmail)
	return agent, nil
}

func ensureAmenities(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error) {
	for _, a := range defaultAmenities {
		a.ID = uuid.New()
		if err := db.WithContext(ctx).Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&a).Error; err != nil {
			return nil, fmt.Errorf("create amenity %q: %w", a.Name, err)
		}
	}
	var ids []uuid.UUID
	if err := db.WithContext(ctx).Model(&models.Amenity{}).Order("name").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// discover turns every folder of images into a listing titled after the
// folder name.
func discover(dir string) ([]sample, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	types := []string{"HOUSE", "APARTMENT", "VILLA", "CONDO"}
	var out []sample
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var images []string
		for _, f := range files {
			if !f.IsDir() && imageExt.MatchString(f.Name()) {
				images = append(images, e.Name()+"/"+f.Name())
			}
		}
		if len(images) == 0 {
			continue
		}
		sort.Strings(images)

		r := seeded(e.Name())
		bedrooms := 1 + r(6)
		out = append(out, sample{
			Title:     formatTitle(e.Name()),
			Type:      types[r(len(types))],
			City:      "Metropolis",
			Area:      "Downtown",
			Price:     float64(150000 + r(2850001)),
			Bedrooms:  bedrooms,
			Bathrooms: 1 + r(bedrooms+1),
			Images:    images,
		})
	}
	return out, nil
}

func build(s sample, agentID uuid.UUID, baseURL string) models.Property {
	r := seeded(s.Title)
	size := float64(100 + r(501))
	parking := 1 + r(3)
	bedrooms, bathrooms := s.Bedrooms, s.Bathrooms

	media := make([]models.PropertyMedia, 0, len(s.Images))
	for _, img := range s.Images {
		media = append(media, models.PropertyMedia{
			ID:   uuid.New(),
			URL:  baseURL + "/images/properties/" + img,
			Type: models.MediaImage,
		})
	}

	description := fmt.Sprintf("Beautiful %s located in a prime area. This %d bedroom, %d bathroom property provides excellent living space and modern amenities.",
		s.Title, bedrooms, bathrooms)

	return models.Property{
		ID:          uuid.New(),
		Title:       s.Title,
		Description: description,
		Price:       s.Price,
		Type:        s.Type,
		Status:      models.StatusAvailable,
		SizeSqm:     &size,
		Bedrooms:    &bedrooms,
		Bathrooms:   &bathrooms,
		Parking:     &parking,
		City:        s.City,
		Area:        s.Area,
		AgentID:     agentID,
		Media:       media,
	}
}

func pickAmenities(title string, ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	r := seeded(title + "/amenities")
	var out []uuid.UUID
	for _, id := range ids {
		if r(2) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// seeded returns a deterministic generator of ints in [0, n) keyed by s, so
// reseeding an empty database yields the same listings.
func seeded(s string) func(n int) int {
	h := fnv.New64a()
	h.Write([]byte(s))
	state := h.Sum64()
	return func(n int) int {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return int(state % uint64(n))
	}
}

func formatTitle(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
