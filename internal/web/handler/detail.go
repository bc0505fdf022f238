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

type jobDetailData struct {
	view.Base
	Job       *domain.Job
	CanApply  bool
	ShowLogin bool
	ApplyForm applyForm
	ApplyErr  string
}

// JobPage renders a single job. A missing or unreachable job sends the
// visitor back to the catalog with a flash instead of a dead-end error page.
func (h *Handler) JobPage(c echo.Context) error {
	job, err := h.api.Job(c.Request().Context(), c.Param("id"))
	if err != nil {
		setFlash(c, "error", jobFetchMessage(err))
		return c.Redirect(http.StatusSeeOther, "/find-work")
	}
	return c.Render(http.StatusOK, "job_details.html", h.jobDetailData(c, job, applyForm{}, ""))
}

func (h *Handler) jobDetailData(c echo.Context, job *domain.Job, form applyForm, applyErr string) jobDetailData {
	data := jobDetailData{
		Base:      h.base(c, job.Title),
		Job:       job,
		ApplyForm: form,
		ApplyErr:  applyErr,
	}
	// Only workers apply, and only while the job is open. Anonymous
	// visitors get a login affordance instead of the form.
	sess := middleware.CurrentSession(c)
	switch {
	case !job.Open():
	case sess == nil:
		data.ShowLogin = true
	case sess.User.UserType == domain.RoleWorker:
		data.CanApply = true
	}
	return data
}

// ApplyToJob submits a worker's application. Guarded by RequireRole(worker)
// at the router, so a session is always present here.
func (h *Handler) ApplyToJob(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	sess := middleware.CurrentSession(c)

	job, err := h.api.Job(ctx, id)
	if err != nil {
		setFlash(c, "error", jobFetchMessage(err))
		return c.Redirect(http.StatusSeeOther, "/find-work")
	}

	var form applyForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, "job_details.html", h.jobDetailData(c, job, form, "invalid form submission"))
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "job_details.html", h.jobDetailData(c, job, form, err.Error()))
	}
	app, err := form.application(id)
	if err != nil {
		return c.Render(http.StatusOK, "job_details.html", h.jobDetailData(c, job, form, err.Error()))
	}

	if _, err := h.api.Apply(ctx, sess.Token, app); err != nil {
		return c.Render(http.StatusOK, "job_details.html", h.jobDetailData(c, job, form, backend.ErrorMessage(err)))
	}

	setFlash(c, "success", "Application submitted!")
	return c.Redirect(http.StatusSeeOther, "/jobs/"+id)
}

type workerDetailData struct {
	view.Base
	Worker *domain.WorkerProfile
}

// WorkerPage renders a single worker profile.
func (h *Handler) WorkerPage(c echo.Context) error {
	worker, err := h.api.Worker(c.Request().Context(), c.Param("id"))
	if err != nil {
		setFlash(c, "error", workerFetchMessage(err))
		return c.Redirect(http.StatusSeeOther, "/hire-talent")
	}
	data := workerDetailData{
		Base:   h.base(c, worker.Title),
		Worker: worker,
	}
	return c.Render(http.StatusOK, "worker_details.html", data)
}

func jobFetchMessage(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "Job not found"
	}
	return backend.ErrorMessage(err)
}

func workerFetchMessage(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "Worker not found"
	}
	return backend.ErrorMessage(err)
}
