package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/monitool/monitool/internal/config"
	"github.com/monitool/monitool/internal/handler"
	"github.com/monitool/monitool/internal/middleware"
)

// Handlers bundles every handler the router needs so main only passes one
// value.
type Handlers struct {
	Auth        *handler.AuthHandler
	Technicians *handler.TechnicianHandler
	Toolboxes   *handler.ToolboxHandler
	Inventory   *handler.InventoryHandler
	AccessLogs  *handler.AccessLogHandler
	Dashboard   *handler.DashboardHandler
	Images      *handler.ImageHandler
	Alerts      *handler.AlertHandler
}

// Register wires every route onto e.  Three tiers of protection apply:
//
//   - public:     /up, /healthz and the /uploads file tree need nothing
//   - API key:    everything under /api/v1 requires the X-API-Key header,
//     which is how edge devices authenticate
//   - API key + JWT: dashboard and administration routes additionally
//     require a bearer token from /api/v1/auth/login
//
// rdb may be nil, in which case rate limiting and response caching are
// skipped entirely.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	// Liveness endpoints for load balancers and the Pi clients.
	e.GET("/up", handler.Health)
	e.GET("/healthz", handler.Health)

	// Uploaded images are served straight from disk without auth so the
	// dashboard can embed them in <img> tags.
	e.GET("/uploads/:subfolder/:filename", h.Images.Serve)

	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	api := e.Group("/api/v1")
	api.Use(middleware.APIKey(cfg.APIKey))

	// Session endpoints.  These sit behind the API key only: login is how
	// a browser obtains its JWT in the first place.
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Edge endpoints used by the Raspberry Pi clients.  The devices hold
	// the API key but never a JWT.
	api.GET("/technicians/by-nfc/:nfc_uid", h.Technicians.GetByNFC)
	api.POST("/access-logs", h.AccessLogs.Create)
	api.POST("/images/upload", h.Images.Upload)

	// Everything else is dashboard territory and requires a valid access
	// token on top of the API key.
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.RequireRole("admin", "viewer"))

	admin.GET("/technicians", h.Technicians.List)
	admin.POST("/technicians", h.Technicians.Create)
	admin.GET("/technicians/:id", h.Technicians.Get)
	admin.PUT("/technicians/:id", h.Technicians.Update)
	admin.DELETE("/technicians/:id", h.Technicians.Delete)

	admin.GET("/toolboxes", h.Toolboxes.List)
	admin.POST("/toolboxes", h.Toolboxes.Create)
	admin.GET("/toolboxes/:id", h.Toolboxes.Get)
	admin.PUT("/toolboxes/:id", h.Toolboxes.Update)
	admin.DELETE("/toolboxes/:id", h.Toolboxes.Delete)
	admin.GET("/toolboxes/:id/inventory", h.Inventory.ListByToolbox)

	admin.POST("/inventory", h.Inventory.Create)
	admin.GET("/inventory/:id", h.Inventory.Get)
	admin.PUT("/inventory/:id", h.Inventory.Update)
	admin.DELETE("/inventory/:id", h.Inventory.Delete)

	admin.GET("/access-logs", h.AccessLogs.List)
	admin.GET("/access-logs/:id", h.AccessLogs.Get)
	admin.DELETE("/access-logs/:id", h.AccessLogs.Delete)

	admin.GET("/alerts", h.Alerts.List)
	admin.PUT("/alerts/:id/resolve", h.Alerts.Resolve)

	admin.GET("/users", h.Auth.ListUsers)
	admin.DELETE("/images", h.Images.Delete)

	// The dashboard polls this endpoint, so its response is cached briefly
	// in Redis when available.
	statsMW := []echo.MiddlewareFunc{}
	if rdb != nil {
		statsMW = append(statsMW, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	admin.GET("/dashboard/stats", h.Dashboard.Stats, statsMW...)
}
