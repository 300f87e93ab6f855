package routes

import (
	"time"

	"github.com/bproperties/property-backend/internal/config"
	"github.com/bproperties/property-backend/internal/dto"
	"github.com/bproperties/property-backend/internal/handlers"
	"github.com/bproperties/property-backend/internal/metrics"
	"github.com/bproperties/property-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Property *handlers.PropertyHandler
	Lead     *handlers.LeadHandler
	Favorite *handlers.FavoriteHandler
	User     *handlers.UserHandler
	Amenity  *handlers.AmenityHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	app.Static("/images", cfg.ImagesDir, fiber.Static{MaxAge: 3600})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached:      tooManyRequests,
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimitMax,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached:      tooManyRequests,
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	jwt := middleware.JWTProtected(cfg)
	staff := middleware.StaffRequired()
	admin := middleware.AdminRequired()

	// Listings: public reads, staff writes
	api.Get("/properties", h.Property.List)
	api.Get("/properties/:id", h.Property.Get)
	api.Post("/properties", jwt, staff, h.Property.Create)
	api.Put("/properties/:id", jwt, staff, h.Property.Update)
	api.Delete("/properties/:id", jwt, staff, h.Property.Delete)

	// Leads: public intake, staff management
	api.Post("/leads", h.Lead.Create)
	api.Get("/leads", jwt, staff, h.Lead.List)
	api.Put("/leads/:id/status", jwt, staff, h.Lead.UpdateStatus)
	api.Delete("/leads/:id", jwt, staff, h.Lead.Delete)

	// Favorites: any signed-in user
	api.Post("/favorites/toggle", jwt, h.Favorite.Toggle)
	api.Get("/favorites", jwt, h.Favorite.List)

	// Users: staff read, admin write
	api.Get("/users", jwt, staff, h.User.List)
	api.Get("/users/metrics", jwt, staff, h.User.Metrics)
	api.Post("/users", jwt, admin, h.User.Create)
	api.Put("/users/:id", jwt, admin, h.User.Update)
	api.Delete("/users/:id", jwt, admin, h.User.Delete)

	api.Get("/amenities", h.Amenity.List)
	api.Post("/amenities", jwt, admin, h.Amenity.Create)
}

func tooManyRequests(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
		Error: true, Message: "Too many requests, please try again later",
	})
}
