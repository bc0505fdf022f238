// Package web assembles the echo application: renderer, validator, global
// middleware and every route of the gateway.
package web

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/browse"
	"github.com/talentbridge/marketplace-web/internal/cache"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/session"
	"github.com/talentbridge/marketplace-web/internal/web/handler"
	"github.com/talentbridge/marketplace-web/internal/web/middleware"
	"github.com/talentbridge/marketplace-web/internal/web/view"
)

// Deps carries everything the router needs to wire the handlers.
type Deps struct {
	API      *backend.Client
	Ref      *cache.Reference
	Sessions *session.Store
	Jobs     *browse.Registry[domain.Job]
	Workers  *browse.Registry[domain.WorkerProfile]
	Redis    *redis.Client // nil when the cache is disabled
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("talentbridge"))
	e.Use(middleware.LoadSession(deps.Sessions))

	h := handler.New(deps.API, deps.Ref, deps.Sessions, deps.Jobs, deps.Workers, deps.Redis, deps.Log)

	// --- Health probes and metrics (no session, no CSRF) ---
	e.GET("/health", h.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", h.Readiness)     // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- JSON results partials (same-origin fetch, read-only) ---
	e.GET("/find-work/results", h.FindWorkResults)
	e.GET("/hire-talent/results", h.HireTalentResults)

	// --- Pages; every form submission carries a CSRF token ---
	pages := e.Group("", echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookieName:     "tb_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	pages.GET("/", h.Home)
	pages.GET("/find-work", h.FindWork)
	pages.GET("/hire-talent", h.HireTalent)
	pages.GET("/categories", h.CategoriesPage)
	pages.GET("/pricing", h.PricingPage)
	pages.GET("/about", h.About)
	pages.GET("/contact", h.Contact)
	pages.GET("/jobs/:id", h.JobPage)
	pages.GET("/workers/:id", h.WorkerPage)

	pages.GET("/login", h.LoginPage, middleware.RedirectAuthenticated())
	pages.POST("/login", h.Authenticate, middleware.RedirectAuthenticated())
	pages.POST("/logout", h.Logout)

	pages.POST("/jobs/:id/apply", h.ApplyToJob, middleware.RequireRole(domain.RoleWorker))

	client := pages.Group("/client-dashboard", middleware.RequireRole(domain.RoleClient))
	client.GET("", h.ClientDashboard)
	client.POST("/profile", h.CreateClientProfile)
	client.POST("/jobs", h.PostJob)

	worker := pages.Group("/worker-dashboard", middleware.RequireRole(domain.RoleWorker))
	worker.GET("", h.WorkerDashboard)
	worker.POST("/profile", h.SaveWorkerProfile)

	return e, nil
}
