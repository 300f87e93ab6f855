package repository

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/bproperties/property-backend/internal/models"
	"gorm.io/gorm"
)

// TypeAll disables the type filter.
const TypeAll = "ALL"

// PropertyFilter is the conjunctive listing filter. Zero values disable a
// criterion.
type PropertyFilter struct {
	Search   string
	Type     string
	MinPrice *float64
	MaxPrice *float64
}

// Normalized trims the search term and upper-cases the type so that equal
// filters produce equal SQL and cache keys.
func (f PropertyFilter) Normalized() PropertyFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.Type = strings.ToUpper(strings.TrimSpace(f.Type))
	if f.Type == TypeAll {
		f.Type = ""
	}
	return f
}

// Scopes returns the GORM scopes implementing the filter.
func (f PropertyFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	n := f.Normalized()
	return []func(*gorm.DB) *gorm.DB{
		SearchScope(n.Search),
		TypeScope(n.Type),
		PriceRangeScope(n.MinPrice, n.MaxPrice),
	}
}

// Matches evaluates the filter against a single property in memory.
func (f PropertyFilter) Matches(p *models.Property) bool {
	n := f.Normalized()
	if n.Search != "" {
		needle := strings.ToLower(n.Search)
		if !containsFold(p.Title, needle) && !containsFold(p.Description, needle) &&
			!containsFold(p.City, needle) && !containsFold(p.Area, needle) {
			return false
		}
	}
	if n.Type != "" && p.Type != n.Type {
		return false
	}
	if n.MinPrice != nil && p.Price < *n.MinPrice {
		return false
	}
	if n.MaxPrice != nil && p.Price > *n.MaxPrice {
		return false
	}
	return true
}

// CacheKey derives a stable key for the normalized filter.
func (f PropertyFilter) CacheKey(prefix string) string {
	n := f.Normalized()
	var b strings.Builder
	b.WriteString("search=")
	b.WriteString(n.Search)
	b.WriteString(":type=")
	b.WriteString(n.Type)
	b.WriteString(":min=")
	if n.MinPrice != nil {
		b.WriteString(strconv.FormatFloat(*n.MinPrice, 'f', -1, 64))
	}
	b.WriteString(":max=")
	if n.MaxPrice != nil {
		b.WriteString(strconv.FormatFloat(*n.MaxPrice, 'f', -1, 64))
	}
	sum := md5.Sum([]byte(b.String()))
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// SearchScope matches the term as a case-insensitive substring of title,
// description, city or area.
func SearchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + escapeLike(search) + "%"
		return db.Where("(title ILIKE ? OR description ILIKE ? OR city ILIKE ? OR area ILIKE ?)", like, like, like, like)
	}
}

func TypeScope(propertyType string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if propertyType == "" {
			return db
		}
		return db.Where("type = ?", propertyType)
	}
}

// PriceRangeScope applies inclusive bounds; either may be nil.
func PriceRangeScope(minPrice, maxPrice *float64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if minPrice != nil {
			db = db.Where("price >= ?", *minPrice)
		}
		if maxPrice != nil {
			db = db.Where("price <= ?", *maxPrice)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
