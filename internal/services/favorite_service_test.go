package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavoriteTwiceRestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agent := f.agent(t, "agent@example.com")
	p := f.listing(t, agent.ID, "Lakeside Villa", "VILLA", 2890000, "/images/1.jpg")
	user := f.agent(t, "buyer@example.com")

	added, err := f.favorites.Toggle(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, added)

	list, err := f.favorites.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Len(t, list[0].Media, 1)

	added, err = f.favorites.Toggle(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, added)

	list, err = f.favorites.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToggleFavoriteUnknownProperty(t *testing.T) {
	f := newFixture(t)
	user := f.agent(t, "buyer@example.com")
	_, err := f.favorites.Toggle(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}
