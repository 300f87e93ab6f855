package services

import (
	"context"
	"testing"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDefaultsToAgent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.agent(t, "agent@example.com")
	assert.Equal(t, models.RoleAgent, u.Role)
	assert.NotEqual(t, "password123", u.Password)

	_, err := f.users.Create(ctx, &dto.CreateUserRequest{Email: "AGENT@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestListUsersWithCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000)
	f.listing(t, agent.ID, "City Apartment", "APARTMENT", 950000)
	_, err := f.leads.Create(ctx, &dto.CreateLeadRequest{PropertyID: p.ID.String(), Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	newest := f.agent(t, "editor@example.com")

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, newest.ID, users[0].ID)
	assert.Equal(t, dto.UserCounts{Properties: 2, Leads: 1}, users[1].Count)
	assert.Equal(t, dto.UserCounts{}, users[0].Count)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.agent(t, "agent@example.com")
	f.agent(t, "other@example.com")

	updated, err := f.users.Update(ctx, u.ID, &dto.UpdateUserRequest{
		Name:     strPtr("Renamed"),
		Role:     strPtr("editor"),
		Password: strPtr("newpass1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.RoleEditor, updated.Role)
	assert.True(t, f.hasher.Compare(updated.Password, "newpass1"))

	_, err = f.users.Update(ctx, u.ID, &dto.UpdateUserRequest{Email: strPtr("other@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.users.Update(ctx, u.ID, &dto.UpdateUserRequest{Role: strPtr("OWNER")})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.users.Update(ctx, uuid.New(), &dto.UpdateUserRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserWithListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000)

	assert.ErrorIs(t, f.users.Delete(ctx, agent.ID), ErrUserHasListings)

	require.NoError(t, f.properties.Delete(ctx, p.ID))
	require.NoError(t, f.users.Delete(ctx, agent.ID))
	assert.ErrorIs(t, f.users.Delete(ctx, agent.ID), ErrUserNotFound)
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	_, err := f.users.Create(ctx, &dto.CreateUserRequest{Email: "admin@example.com", Password: "password123", Role: models.RoleAdmin})
	require.NoError(t, err)
	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000)
	_, err = f.leads.Create(ctx, &dto.CreateLeadRequest{PropertyID: p.ID.String(), Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	m, err := f.users.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.MetricsResponse{TotalProperties: 1, TotalLeads: 1, TotalAgents: 1}, m)
}

func TestCreateAmenity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.amenities.Create(ctx, &dto.CreateAmenityRequest{Name: "Pool", Icon: "pool"})
	require.NoError(t, err)
	_, err = f.amenities.Create(ctx, &dto.CreateAmenityRequest{Name: "Gym"})
	require.NoError(t, err)
	_, err = f.amenities.Create(ctx, &dto.CreateAmenityRequest{Name: " Pool "})
	assert.ErrorIs(t, err, ErrAmenityExists)

	list, err := f.amenities.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Gym", list[0].Name)
}
