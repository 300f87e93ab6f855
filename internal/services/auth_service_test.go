package services

import (
	"context"
	"testing"
	"time"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.Register(ctx, &dto.RegisterRequest{Name: "Nadia", Email: "nadia@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	_, err = f.auth.Register(ctx, &dto.RegisterRequest{Name: "Other", Email: " NADIA@example.com ", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), &dto.RegisterRequest{Email: "x@example.com", Password: "secret1", Role: "OWNER"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginTokenCarriesStoredRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &dto.RegisterRequest{Name: "Rafi", Email: "rafi@example.com", Password: "secret1", Role: models.RoleEditor})
	require.NoError(t, err)

	resp, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "rafi@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := parseToken(f.tokens, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, claims["role"])
	assert.Equal(t, resp.User.ID.String(), claims["id"])
	assert.Equal(t, "rafi@example.com", claims["email"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &dto.RegisterRequest{Email: "sara@example.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Email: "sara@example.com", Password: "nope"}},
		{"unknown email", dto.LoginRequest{Email: "ghost@example.com", Password: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Login(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	issuedAt := time.Now()
	tm.now = func() time.Time { return issuedAt }

	token, err := tm.Issue(&models.User{Role: models.RoleAgent})
	require.NoError(t, err)

	_, err = parseToken(tm, token)
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = parseToken(tm, token)
	assert.ErrorIs(t, err, errInvalidToken)

	other := NewTokenManager("different", time.Minute)
	_, err = parseToken(other, token)
	assert.ErrorIs(t, err, errInvalidToken)
}
