package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/config"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	// Auth is nil when the server runs without a database; the auth
	// endpoints are then not mounted and tokens must be issued elsewhere.
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	Wells  *handlers.WellHandler
	Layers *handlers.LayerHandler
	Index  *handlers.IndexHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	app.Get("/metrics", metrics.Handler())
	app.Get("/", middleware.PageProtected(cfg), middleware.Identity(cfg), h.Index.Show)

	api := app.Group("/api")

	// General API rate limiter, per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	if h.Auth != nil {
		// Auth-specific rate limit: 10 req/min per IP (stricter)
		auth := api.Group("/auth")
		auth.Use(limiter.New(limiter.Config{
			Max:               10,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
		auth.Post("/register", h.Auth.Register)
		auth.Post("/login", h.Auth.Login)
		auth.Post("/refresh", h.Auth.Refresh)
		api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	}

	protected := []fiber.Handler{middleware.JWTProtected(cfg), middleware.Identity(cfg)}

	// Named actions are registered before /:id so they are not taken for ids.
	wells := api.Group("/wells", protected...)
	wells.Get("/", h.Wells.List)
	wells.Post("/", h.Wells.Create)
	wells.Get("/my_wells", h.Wells.List)
	wells.Get("/:id", h.Wells.Get)
	wells.Put("/:id", h.Wells.Update)
	wells.Patch("/:id", h.Wells.Patch)
	wells.Delete("/:id", h.Wells.Delete)

	layers := api.Group("/layers", protected...)
	layers.Get("/", h.Layers.List)
	layers.Post("/", h.Layers.Create)
	layers.Get("/well_layers", h.Layers.WellLayers)
	layers.Get("/:id", h.Layers.Get)
	layers.Put("/:id", h.Layers.Update)
	layers.Patch("/:id", h.Layers.Patch)
	layers.Delete("/:id", h.Layers.Delete)
}
