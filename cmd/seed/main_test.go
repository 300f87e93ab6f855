package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bproperties/property-backend/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestFormatTitle(t *testing.T) {
	assert.Equal(t, "Lakeside Villa", formatTitle("lakeside-villa"))
	assert.Equal(t, "Skyline", formatTitle("skyline"))
}

func TestSeededIsDeterministic(t *testing.T) {
	a, b := seeded("Lakeside Villa"), seeded("Lakeside Villa")
	for i := 0; i < 20; i++ {
		v := a(10)
		assert.Equal(t, v, b(10))
		assert.True(t, v >= 0 && v < 10)
	}
}

func TestDiscoverImageFolders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "garden-house"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty-plot"), 0o755))
	for _, name := range []string{"2.JPG", "1.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "garden-house", name), []byte("x"), 0o644))
	}

	got, err := discover(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Garden House", got[0].Title)
	assert.Equal(t, []string{"garden-house/1.jpg", "garden-house/2.JPG"}, got[0].Images)
	assert.Contains(t, []string{"HOUSE", "APARTMENT", "VILLA", "CONDO"}, got[0].Type)
	assert.GreaterOrEqual(t, got[0].Price, 150000.0)

	missing, err := discover(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestBuildListing(t *testing.T) {
	agentID := uuid.New()
	p := build(samples[0], agentID, "http://cdn.example.com")

	assert.Equal(t, agentID, p.AgentID)
	require.Len(t, p.Media, 2)
	assert.Equal(t, "http://cdn.example.com/images/properties/lakeside-villa/1.jpg", p.Media[0].URL)
	require.NotNil(t, p.Bedrooms)
	assert.Equal(t, 5, *p.Bedrooms)
	assert.Contains(t, p.Description, "5 bedroom, 4 bathroom")
}

func TestSeedClosesDatabaseWhenMigrationFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	connect := func() (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
	}

	err = seed(context.Background(), connect, &config.Config{}, "http://localhost:5000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
