package handlers

import (
	"time"

	"github.com/bproperties/property-backend/internal/cache"
	"github.com/bproperties/property-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	pingDB func() error
	cache  cache.Cache
}

func NewHealthHandler(pingDB func() error, c cache.Cache) *HealthHandler {
	return &HealthHandler{pingDB: pingDB, cache: c}
}

// Check reports 503 when the database is unreachable. A cache outage only
// degrades the report since listings fall back to the database.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Cache:     "disabled",
	}

	if err := h.pingDB(); err != nil {
		resp.Status = "unhealthy"
		resp.DB = "unreachable"
	}

	if h.cache != nil {
		if _, noop := h.cache.(cache.Noop); !noop {
			resp.Cache = "ok"
			if err := h.cache.Ping(c.UserContext()); err != nil {
				resp.Cache = "unreachable"
				if resp.Status == "ok" {
					resp.Status = "degraded"
				}
			}
		}
	}

	if resp.Status == "unhealthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
