package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/web/middleware"
	"github.com/talentbridge/marketplace-web/internal/web/view"
)

// The dashboards distinguish three profile states on load: present (render
// the dashboard), absent (backend said 404, open the creation form) and
// unknown (the lookup itself failed, open the form with the error so the
// visitor is never shown a half-broken dashboard). A 401 means the backend
// rejected the stored token, so the session is cleared and the visitor is
// sent back to the auth page.

type clientDashboardData struct {
	view.Base
	Profile         *domain.ClientProfile
	ShowProfileForm bool
	ProfileForm     clientProfileForm
	ProfileErr      string
	Jobs            []domain.Job
	JobsErr         string
	ShowJobForm     bool
	JobForm         jobForm
	JobErr          string
	OpenJobs        int
}

// ClientDashboard renders the client's dashboard: company profile, posted
// jobs and the posting form. The jobs list is fail-soft; a fetch error
// renders as a banner over an empty list.
func (h *Handler) ClientDashboard(c echo.Context) error {
	data, redirect := h.clientDashboardData(c, clientProfileForm{}, "", jobForm{}, "")
	if redirect != "" {
		return c.Redirect(http.StatusSeeOther, redirect)
	}
	return c.Render(http.StatusOK, "client_dashboard.html", data)
}

func (h *Handler) clientDashboardData(c echo.Context, profileForm clientProfileForm, profileErr string, jobFormIn jobForm, jobErr string) (clientDashboardData, string) {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	data := clientDashboardData{
		Base:        h.base(c, "Client Dashboard"),
		ProfileForm: profileForm,
		ProfileErr:  profileErr,
		JobForm:     jobFormIn,
		JobErr:      jobErr,
	}
	if data.JobForm.Category == "" {
		data.JobForm.Category = "professional_services"
	}

	profile, err := h.api.MyClientProfile(ctx, sess.Token)
	switch {
	case err == nil:
		data.Profile = profile
	case errors.Is(err, domain.ErrNotFound):
		data.ShowProfileForm = true
	case errors.Is(err, domain.ErrUnauthorized):
		h.sessions.Clear(c.Response())
		return data, "/login"
	default:
		data.ShowProfileForm = true
		if data.ProfileErr == "" {
			data.ProfileErr = "Could not load your profile: " + backend.ErrorMessage(err)
		}
	}
	if data.ShowProfileForm {
		return data, ""
	}

	jobs, err := h.api.MyJobs(ctx, sess.Token)
	if err != nil {
		data.JobsErr = backend.ErrorMessage(err)
	} else {
		data.Jobs = jobs
		for i := range jobs {
			if jobs[i].Open() {
				data.OpenJobs++
			}
		}
	}
	return data, ""
}

// CreateClientProfile handles the company profile creation form.
func (h *Handler) CreateClientProfile(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var form clientProfileForm
	if err := c.Bind(&form); err != nil {
		return h.renderClientProfileError(c, form, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderClientProfileError(c, form, err.Error())
	}

	if _, err := h.api.CreateClientProfile(ctx, sess.Token, form.payload()); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.sessions.Clear(c.Response())
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return h.renderClientProfileError(c, form, backend.ErrorMessage(err))
	}

	setFlash(c, "success", "Profile created!")
	return c.Redirect(http.StatusSeeOther, "/client-dashboard")
}

func (h *Handler) renderClientProfileError(c echo.Context, form clientProfileForm, msg string) error {
	data := clientDashboardData{
		Base:            h.base(c, "Client Dashboard"),
		ShowProfileForm: true,
		ProfileForm:     form,
		ProfileErr:      msg,
	}
	return c.Render(http.StatusOK, "client_dashboard.html", data)
}

// PostJob handles the job posting form on the client dashboard.
func (h *Handler) PostJob(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var form jobForm
	if err := c.Bind(&form); err != nil {
		return h.renderJobError(c, form, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderJobError(c, form, err.Error())
	}
	payload, err := form.payload()
	if err != nil {
		return h.renderJobError(c, form, err.Error())
	}

	if _, err := h.api.CreateJob(ctx, sess.Token, payload); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.sessions.Clear(c.Response())
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return h.renderJobError(c, form, backend.ErrorMessage(err))
	}

	setFlash(c, "success", "Job posted!")
	return c.Redirect(http.StatusSeeOther, "/client-dashboard")
}

func (h *Handler) renderJobError(c echo.Context, form jobForm, msg string) error {
	data, redirect := h.clientDashboardData(c, clientProfileForm{}, "", form, msg)
	if redirect != "" {
		return c.Redirect(http.StatusSeeOther, redirect)
	}
	data.ShowJobForm = true
	return c.Render(http.StatusOK, "client_dashboard.html", data)
}

type workerDashboardData struct {
	view.Base
	Profile         *domain.WorkerProfile
	ShowProfileForm bool
	ProfileForm     workerProfileForm
	ProfileErr      string
	Applications    []domain.Application
	AppsErr         string
	Pending         int
	Accepted        int
}

// WorkerDashboard renders the worker's dashboard: professional profile,
// application list and counters. ?edit=1 opens the profile form prefilled
// with the current values.
func (h *Handler) WorkerDashboard(c echo.Context) error {
	data, redirect := h.workerDashboardData(c, nil, "")
	if redirect != "" {
		return c.Redirect(http.StatusSeeOther, redirect)
	}
	return c.Render(http.StatusOK, "worker_dashboard.html", data)
}

func (h *Handler) workerDashboardData(c echo.Context, formOverride *workerProfileForm, profileErr string) (workerDashboardData, string) {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	data := workerDashboardData{
		Base:       h.base(c, "Worker Dashboard"),
		ProfileErr: profileErr,
	}

	profile, err := h.api.MyWorkerProfile(ctx, sess.Token)
	switch {
	case err == nil:
		data.Profile = profile
		if c.QueryParam("edit") == "1" {
			data.ShowProfileForm = true
			data.ProfileForm = workerProfileFormFrom(profile)
		}
	case errors.Is(err, domain.ErrNotFound):
		data.ShowProfileForm = true
		data.ProfileForm.Category = "professional_services"
	case errors.Is(err, domain.ErrUnauthorized):
		h.sessions.Clear(c.Response())
		return data, "/login"
	default:
		data.ShowProfileForm = true
		if data.ProfileErr == "" {
			data.ProfileErr = "Could not load your profile: " + backend.ErrorMessage(err)
		}
	}
	if formOverride != nil {
		data.ShowProfileForm = true
		data.ProfileForm = *formOverride
	}

	apps, err := h.api.MyApplications(ctx, sess.Token)
	if err != nil {
		data.AppsErr = backend.ErrorMessage(err)
	} else {
		data.Applications = apps
		for i := range apps {
			switch apps[i].Status {
			case domain.ApplicationPending:
				data.Pending++
			case domain.ApplicationAccepted:
				data.Accepted++
			}
		}
	}
	return data, ""
}

// SaveWorkerProfile handles both creation and update of the worker profile;
// which one is decided by whether a profile already exists.
func (h *Handler) SaveWorkerProfile(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.CurrentSession(c)

	var form workerProfileForm
	if err := c.Bind(&form); err != nil {
		return h.renderWorkerProfileError(c, form, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderWorkerProfileError(c, form, err.Error())
	}
	payload, err := form.payload()
	if err != nil {
		return h.renderWorkerProfileError(c, form, err.Error())
	}

	update := true
	if _, err := h.api.MyWorkerProfile(ctx, sess.Token); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.sessions.Clear(c.Response())
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		update = false
	}

	if _, err := h.api.SaveWorkerProfile(ctx, sess.Token, payload, update); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.sessions.Clear(c.Response())
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return h.renderWorkerProfileError(c, form, backend.ErrorMessage(err))
	}

	setFlash(c, "success", "Profile saved!")
	return c.Redirect(http.StatusSeeOther, "/worker-dashboard")
}

func (h *Handler) renderWorkerProfileError(c echo.Context, form workerProfileForm, msg string) error {
	data, redirect := h.workerDashboardData(c, &form, msg)
	if redirect != "" {
		return c.Redirect(http.StatusSeeOther, redirect)
	}
	return c.Render(http.StatusOK, "worker_dashboard.html", data)
}
