package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bproperties/property-backend/internal/cache"
	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiltersByType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")

	f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000)
	f.listing(t, agent.ID, "City Apartment", "APARTMENT", 950000)
	f.listing(t, agent.ID, "Hill Villa", "villa", 4100000)

	got, err := f.properties.List(ctx, repository.PropertyFilter{Type: "Villa"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "VILLA", p.Type)
	}

	all, err := f.properties.List(ctx, repository.PropertyFilter{Type: "All"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Hill Villa", all[0].Title, "newest first")
}

func TestListSearchAndPriceRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")

	f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000)
	f.listing(t, agent.ID, "City Apartment", "APARTMENT", 950000)

	minPrice, maxPrice := 950000.0, 1000000.0
	got, err := f.properties.List(ctx, repository.PropertyFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "City Apartment", got[0].Title)

	got, err = f.properties.List(ctx, repository.PropertyFilter{Search: "LAKE"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lakeside Villa", got[0].Title)
}

func TestCreateDefaultsAgentAndStatus(t *testing.T) {
	f := newFixture(t)
	agent := f.agent(t, "agent@example.com")

	p := f.listing(t, agent.ID, "Studio", "apartment", 100, "/images/a.jpg")
	assert.Equal(t, agent.ID, p.AgentID)
	assert.Equal(t, "APARTMENT", p.Type)
	assert.Equal(t, models.StatusAvailable, p.Status)
	require.NotNil(t, p.Agent)
	assert.Equal(t, agent.Email, p.Agent.Email)
	require.Len(t, p.Media, 1)
	assert.Equal(t, models.MediaImage, p.Media[0].Type)
}

func TestCreateRejectsUnknownAgentAndAmenity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")

	_, err := f.properties.Create(ctx, agent.ID, &dto.CreatePropertyRequest{Title: "X", Type: "VILLA", AgentID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrAgentNotFound)

	_, err = f.properties.Create(ctx, agent.ID, &dto.CreatePropertyRequest{Title: "X", Type: "VILLA", Amenities: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrUnknownAmenity)
}

func TestListingOwnerMustBeAgentOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	buyer, err := f.users.Create(ctx, &dto.CreateUserRequest{Email: "buyer@example.com", Password: "password123", Role: models.RoleUser})
	require.NoError(t, err)
	editor, err := f.users.Create(ctx, &dto.CreateUserRequest{Email: "editor@example.com", Password: "password123", Role: models.RoleEditor})
	require.NoError(t, err)

	_, err = f.properties.Create(ctx, agent.ID, &dto.CreatePropertyRequest{Title: "X", Type: "VILLA", AgentID: buyer.ID.String()})
	assert.ErrorIs(t, err, ErrAgentNotFound)

	_, err = f.properties.Create(ctx, editor.ID, &dto.CreatePropertyRequest{Title: "X", Type: "VILLA"})
	assert.ErrorIs(t, err, ErrAgentNotFound, "caller default must also be an agent")

	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000)
	_, err = f.properties.Update(ctx, p.ID, &dto.UpdatePropertyRequest{AgentID: strPtr(buyer.ID.String())})
	assert.ErrorIs(t, err, ErrAgentNotFound)

	got, err := f.properties.Create(ctx, editor.ID, &dto.CreatePropertyRequest{Title: "Y", Type: "VILLA", AgentID: agent.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.AgentID)
}

func TestUpdateReplacesMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000, "/images/1.jpg", "/images/2.jpg")
	require.Equal(t, 2, f.db.MediaCount(p.ID))

	updated, err := f.properties.Update(ctx, p.ID, &dto.UpdatePropertyRequest{
		Title: strPtr("Lakeside Villa II"),
		Media: []dto.MediaRequest{{URL: "/images/3.mp4", Type: models.MediaVideo}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lakeside Villa II", updated.Title)
	require.Len(t, updated.Media, 1)
	assert.Equal(t, "/images/3.mp4", updated.Media[0].URL)
	assert.Equal(t, 1, f.db.MediaCount(p.ID))

	// no media field leaves media untouched
	_, err = f.properties.Update(ctx, p.ID, &dto.UpdatePropertyRequest{Status: strPtr(models.StatusSold)})
	require.NoError(t, err)
	assert.Equal(t, 1, f.db.MediaCount(p.ID))
}

func TestUpdateReplacesAmenities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	pool, err := f.amenities.Create(ctx, &dto.CreateAmenityRequest{Name: "Pool"})
	require.NoError(t, err)
	gym, err := f.amenities.Create(ctx, &dto.CreateAmenityRequest{Name: "Gym"})
	require.NoError(t, err)

	p, err := f.properties.Create(ctx, agent.ID, &dto.CreatePropertyRequest{
		Title: "Tower", Type: "APARTMENT", Amenities: []uuid.UUID{pool.ID, pool.ID},
	})
	require.NoError(t, err)
	require.Len(t, p.Amenities, 1)

	updated, err := f.properties.Update(ctx, p.ID, &dto.UpdatePropertyRequest{Amenities: []uuid.UUID{gym.ID}})
	require.NoError(t, err)
	require.Len(t, updated.Amenities, 1)
	assert.Equal(t, "Gym", updated.Amenities[0].Name)

	updated, err = f.properties.Update(ctx, p.ID, &dto.UpdatePropertyRequest{Amenities: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Amenities)
}

func TestUpdateMissingProperty(t *testing.T) {
	f := newFixture(t)
	_, err := f.properties.Update(context.Background(), uuid.New(), &dto.UpdatePropertyRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestDeleteRemovesMediaAndDetachesLeads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000, "/images/1.jpg", "/images/2.jpg")

	lead, err := f.leads.Create(ctx, &dto.CreateLeadRequest{PropertyID: p.ID.String(), Name: "Visitor", Email: "v@example.com"})
	require.NoError(t, err)

	require.NoError(t, f.properties.Delete(ctx, p.ID))
	assert.Equal(t, 0, f.db.MediaCount(p.ID))

	_, err = f.properties.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	leads, err := f.leads.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, lead.ID, leads[0].ID)
	assert.Nil(t, leads[0].PropertyID)

	assert.ErrorIs(t, f.properties.Delete(ctx, p.ID), ErrPropertyNotFound)
}

func TestPropertyWriteInvalidatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := newFixture(t)
	f.properties = NewPropertyService(f.db.Properties(), f.db.Users(), cache.NewRedisCache(client, time.Minute))
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")

	got, err := f.properties.List(ctx, repository.PropertyFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, mr.Keys(), 1)

	// a write that bypasses the service is not visible while cached
	require.NoError(t, f.db.Properties().Create(ctx, &models.Property{Title: "Hidden", Type: "VILLA", AgentID: agent.ID}, nil))
	got, err = f.properties.List(ctx, repository.PropertyFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	f.listing(t, agent.ID, "Visible", "VILLA", 1)
	assert.Equal(t, []string{"gen:properties"}, mr.Keys())

	got, err = f.properties.List(ctx, repository.PropertyFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// pausingStore runs afterRead once, between the database read of List and
// the cache fill that follows it.
type pausingStore struct {
	PropertyStore
	afterRead func()
}

func (s *pausingStore) List(ctx context.Context, f repository.PropertyFilter) ([]models.Property, error) {
	out, err := s.PropertyStore.List(ctx, f)
	if hook := s.afterRead; hook != nil {
		s.afterRead = nil
		hook()
	}
	return out, err
}

func TestCacheFillRacingAWriteIsNeverServed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	queryCache := cache.NewRedisCache(client, time.Minute)

	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000, "/images/old.jpg")

	store := &pausingStore{PropertyStore: f.db.Properties()}
	reader := NewPropertyService(store, f.db.Users(), queryCache)
	writer := NewPropertyService(f.db.Properties(), f.db.Users(), queryCache)

	store.afterRead = func() {
		_, err := writer.Update(ctx, p.ID, &dto.UpdatePropertyRequest{
			Media: []dto.MediaRequest{{URL: "/images/new.jpg"}},
		})
		require.NoError(t, err)
	}

	stale, err := reader.List(ctx, repository.PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "/images/old.jpg", stale[0].Media[0].URL, "first read saw the pre-write row")

	got, err := reader.List(ctx, repository.PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Media, 1)
	assert.Equal(t, "/images/new.jpg", got[0].Media[0].URL)
}
