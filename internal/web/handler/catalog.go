package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/browse"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/web/view"
)

// browseCookie identifies one browsing context, scoped to the browser: each
// visitor gets their own fetch-ordering controller, and tabs within one
// browser share it. It is not a session and carries no identity.
const browseCookie = "tb_browse"

func (h *Handler) browseContext(c echo.Context) string {
	if ck, err := c.Cookie(browseCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	id := hex.EncodeToString(buf)
	c.SetCookie(&http.Cookie{
		Name:     browseCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

type findWorkData struct {
	view.Base
	Filters  browse.JobFilters
	Jobs     []domain.Job
	FetchErr string
}

// FindWork renders the job catalog with the current filter selection. Full
// page loads fetch immediately; only the in-page filter script goes through
// the debounced results endpoint.
func (h *Handler) FindWork(c echo.Context) error {
	filters := browse.JobFiltersFromQuery(c.QueryParams())
	ctrl := h.jobs.Get(h.browseContext(c))
	snap := ctrl.Browse(c.Request().Context(), filters.Values())

	data := findWorkData{
		Base:    h.base(c, "Find Work"),
		Filters: filters,
		Jobs:    snap.Items,
	}
	if snap.Err != nil {
		data.FetchErr = backend.ErrorMessage(snap.Err)
	}
	return c.Render(http.StatusOK, "find_work.html", data)
}

type hireTalentData struct {
	view.Base
	Filters  browse.WorkerFilters
	Workers  []domain.WorkerProfile
	FetchErr string
}

// HireTalent renders the worker catalog with the current filter selection.
func (h *Handler) HireTalent(c echo.Context) error {
	filters := browse.WorkerFiltersFromQuery(c.QueryParams())
	ctrl := h.workers.Get(h.browseContext(c))
	snap := ctrl.Browse(c.Request().Context(), filters.Values())

	data := hireTalentData{
		Base:    h.base(c, "Hire Talent"),
		Filters: filters,
		Workers: snap.Items,
	}
	if snap.Err != nil {
		data.FetchErr = backend.ErrorMessage(snap.Err)
	}
	return c.Render(http.StatusOK, "hire_talent.html", data)
}

// resultsPayload is the JSON shape consumed by the filter scripts.
type resultsPayload[T any] struct {
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

func renderResults[T any](c echo.Context, snap browse.Snapshot[T]) error {
	payload := resultsPayload[T]{Items: snap.Items}
	if payload.Items == nil {
		payload.Items = []T{}
	}
	if snap.Err != nil {
		payload.Error = backend.ErrorMessage(snap.Err)
	}
	return c.JSON(http.StatusOK, payload)
}

// FindWorkResults is the debounced JSON partial behind the job filter
// script. Bursts of filter changes within the quiet period collapse into a
// single backend fetch, and a stale response never overwrites a newer one.
func (h *Handler) FindWorkResults(c echo.Context) error {
	filters := browse.JobFiltersFromQuery(c.QueryParams())
	ctrl := h.jobs.Get(h.browseContext(c))

	select {
	case snap := <-ctrl.Debounced(c.Request().Context(), filters.Values()):
		return renderResults(c, snap)
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}
}

// HireTalentResults is the debounced JSON partial behind the worker filter
// script.
func (h *Handler) HireTalentResults(c echo.Context) error {
	filters := browse.WorkerFiltersFromQuery(c.QueryParams())
	ctrl := h.workers.Get(h.browseContext(c))

	select {
	case snap := <-ctrl.Debounced(c.Request().Context(), filters.Values()):
		return renderResults(c, snap)
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}
}
