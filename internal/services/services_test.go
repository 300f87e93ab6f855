package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/bproperties/property-backend/internal/repository/memstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	db         *memstore.DB
	hasher     *PasswordHasher
	tokens     *TokenManager
	auth       *AuthService
	properties *PropertyService
	leads      *LeadService
	favorites  *FavoriteService
	users      *UserService
	amenities  *AmenityService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memstore.New()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	tokens := NewTokenManager("test-secret", time.Hour)
	return &fixture{
		db:         db,
		hasher:     hasher,
		tokens:     tokens,
		auth:       NewAuthService(db.Users(), hasher, tokens),
		properties: NewPropertyService(db.Properties(), db.Users(), nil),
		leads:      NewLeadService(db.Leads(), db.Properties(), nil),
		favorites:  NewFavoriteService(db.Favorites(), db.Properties()),
		users:      NewUserService(db.Users(), db.Properties(), db.Leads(), hasher),
		amenities:  NewAmenityService(db.Amenities()),
	}
}

func (f *fixture) agent(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &dto.CreateUserRequest{
		Name: "Agent", Email: email, Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) listing(t *testing.T, agentID uuid.UUID, title, kind string, price float64, media ...string) *models.Property {
	t.Helper()
	req := &dto.CreatePropertyRequest{Title: title, Type: kind, Price: dto.FlexFloat(price), City: "Dhaka"}
	for _, url := range media {
		req.Media = append(req.Media, dto.MediaRequest{URL: url})
	}
	p, err := f.properties.Create(context.Background(), agentID, req)
	require.NoError(t, err)
	return p
}

func strPtr(s string) *string { return &s }

var errInvalidToken = errors.New("invalid or expired token")

// parseToken verifies raw the way the HTTP middleware does and returns its claims.
func parseToken(m *TokenManager, raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}
	return claims, nil
}
