package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bproperties/property-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DryRun: true,
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func float(v float64) *float64 { return &v }

func filterSQL(t *testing.T, f PropertyFilter) (string, []interface{}) {
	t.Helper()
	var properties []models.Property
	stmt := newDryRunDB(t).Scopes(f.Scopes()...).Find(&properties).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestFilterEmptyHasNoWhere(t *testing.T) {
	sql, vars := filterSQL(t, PropertyFilter{})
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, vars)
}

func TestFilterSearchMatchesAnyTextColumn(t *testing.T) {
	sql, vars := filterSQL(t, PropertyFilter{Search: "  lake "})
	assert.Contains(t, sql, "title ILIKE $1 OR description ILIKE $2 OR city ILIKE $3 OR area ILIKE $4")
	require.Len(t, vars, 4)
	for _, v := range vars {
		assert.Equal(t, "%lake%", v)
	}
}

func TestFilterSearchEscapesWildcards(t *testing.T) {
	_, vars := filterSQL(t, PropertyFilter{Search: "100%_off"})
	require.NotEmpty(t, vars)
	assert.Equal(t, `%100\%\_off%`, vars[0])
}

func TestFilterTypeIsUpperCased(t *testing.T) {
	sql, vars := filterSQL(t, PropertyFilter{Type: "villa"})
	assert.Contains(t, sql, "type = $1")
	assert.Equal(t, []interface{}{"VILLA"}, vars)
}

func TestFilterTypeAllIsIgnored(t *testing.T) {
	for _, typ := range []string{"All", "ALL", "all"} {
		sql, vars := filterSQL(t, PropertyFilter{Type: typ})
		assert.NotContains(t, sql, "type =", typ)
		assert.Empty(t, vars, typ)
	}
}

func TestFilterPriceRangeIsInclusive(t *testing.T) {
	sql, vars := filterSQL(t, PropertyFilter{MinPrice: float(100), MaxPrice: float(500)})
	assert.Contains(t, sql, "price >= $1")
	assert.Contains(t, sql, "price <= $2")
	assert.Equal(t, []interface{}{100.0, 500.0}, vars)

	sql, vars = filterSQL(t, PropertyFilter{MaxPrice: float(500)})
	assert.NotContains(t, sql, "price >=")
	assert.Equal(t, []interface{}{500.0}, vars)
}

func TestFilterCombinesConjunctively(t *testing.T) {
	sql, vars := filterSQL(t, PropertyFilter{Search: "x", Type: "APARTMENT", MinPrice: float(1)})
	assert.Contains(t, sql, "AND type = $5 AND price >= $6")
	assert.Len(t, vars, 6)
}

func TestFilterMatches(t *testing.T) {
	villa := &models.Property{Title: "Lakeside View", City: "Lakeside", Type: "VILLA", Price: 2890000}
	flat := &models.Property{Title: "Hilltop Terrace", Description: "infinity pool", Type: "APARTMENT", Price: 2300000}

	tests := []struct {
		name   string
		filter PropertyFilter
		villa  bool
		flat   bool
	}{
		{"empty", PropertyFilter{}, true, true},
		{"search is case-insensitive", PropertyFilter{Search: "LAKE"}, true, false},
		{"search description", PropertyFilter{Search: "pool"}, false, true},
		{"type", PropertyFilter{Type: "VILLA"}, true, false},
		{"type all", PropertyFilter{Type: "All"}, true, true},
		{"min bound inclusive", PropertyFilter{MinPrice: float(2890000)}, true, false},
		{"max bound inclusive", PropertyFilter{MaxPrice: float(2300000)}, false, true},
		{"conjunction", PropertyFilter{Search: "lake", Type: "APARTMENT"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.villa, tt.filter.Matches(villa))
			assert.Equal(t, tt.flat, tt.filter.Matches(flat))
		})
	}
}

func TestCacheKeyIsStableForEquivalentFilters(t *testing.T) {
	a := PropertyFilter{Search: " lake ", Type: "villa", MinPrice: float(100)}
	b := PropertyFilter{Search: "lake", Type: "VILLA", MinPrice: float(100.0)}
	c := PropertyFilter{Search: "lake", Type: "VILLA"}

	assert.Equal(t, a.CacheKey("properties"), b.CacheKey("properties"))
	assert.NotEqual(t, a.CacheKey("properties"), c.CacheKey("properties"))
	assert.Equal(t, PropertyFilter{Type: "All"}.CacheKey("p"), PropertyFilter{}.CacheKey("p"))
}
