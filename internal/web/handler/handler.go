// Package handler holds the gateway's page and form handlers. Every handler
// renders a server-side template or redirects; the only JSON surfaces are the
// catalog results partials consumed by the in-page filter script and the
// health probes.
package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/browse"
	"github.com/talentbridge/marketplace-web/internal/cache"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/session"
	"github.com/talentbridge/marketplace-web/internal/web/middleware"
	"github.com/talentbridge/marketplace-web/internal/web/view"
)

// Handler carries the dependencies shared by all page handlers.
type Handler struct {
	api      *backend.Client
	ref      *cache.Reference
	sessions *session.Store
	jobs     *browse.Registry[domain.Job]
	workers  *browse.Registry[domain.WorkerProfile]
	rdb      *redis.Client // nil when the cache is disabled
	log      zerolog.Logger
}

// New wires a Handler.
func New(
	api *backend.Client,
	ref *cache.Reference,
	sessions *session.Store,
	jobs *browse.Registry[domain.Job],
	workers *browse.Registry[domain.WorkerProfile],
	rdb *redis.Client,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		api:      api,
		ref:      ref,
		sessions: sessions,
		jobs:     jobs,
		workers:  workers,
		rdb:      rdb,
		log:      log,
	}
}

// base assembles the fields every page template needs from the current
// request: session state for the nav, the pending flash, the CSRF token.
func (h *Handler) base(c echo.Context, title string) view.Base {
	b := view.Base{
		Title: title,
		Path:  c.Request().URL.Path,
		Flash: takeFlash(c),
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		b.User = &sess.User
	}
	if token, ok := c.Get("csrf").(string); ok {
		b.CSRF = token
	}
	return b
}
