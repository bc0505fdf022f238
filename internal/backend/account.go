package backend

import (
	"context"
	"net/http"

	"github.com/talentbridge/marketplace-web/internal/core/domain"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup payload; it extends Credentials with identity
// fields.
type Registration struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"full_name"`
	UserType domain.Role `json:"user_type"`
}

// AuthResult pairs the bearer token with the authenticated user, as returned
// by both auth endpoints.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// Login authenticates existing credentials.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", creds, &out, "auth_login"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account and returns an authenticated session for it.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", reg, &out, "auth_register"); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewJob is the job-creation payload posted by a client.
type NewJob struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory"`
	BudgetType     domain.BudgetType `json:"budget_type"`
	BudgetAmount   float64           `json:"budget_amount"`
	Location       string            `json:"location"`
	JobType        domain.JobType    `json:"job_type"`
	SkillsRequired []string          `json:"skills_required"`
}

// CreateJob posts a new job on behalf of the authenticated client.
func (c *Client) CreateJob(ctx context.Context, token string, job NewJob) (*domain.Job, error) {
	var out domain.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", nil, token, job, &out, "job_create"); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyJobs lists the jobs owned by the authenticated client.
func (c *Client) MyJobs(ctx context.Context, token string) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/client/my-jobs", nil, token, nil, &out, "my_jobs"); err != nil {
		return nil, err
	}
	return out, nil
}

// NewApplication is the proposal payload posted by a worker against a job.
type NewApplication struct {
	JobID        string  `json:"job_id"`
	CoverLetter  string  `json:"cover_letter"`
	ProposedRate float64 `json:"proposed_rate"`
}

// Apply submits an application for the authenticated worker.
func (c *Client) Apply(ctx context.Context, token string, app NewApplication) (*domain.Application, error) {
	var out domain.Application
	if err := c.do(ctx, http.MethodPost, "/applications", nil, token, app, &out, "application_create"); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyApplications lists the authenticated worker's applications.
func (c *Client) MyApplications(ctx context.Context, token string) ([]domain.Application, error) {
	var out []domain.Application
	if err := c.do(ctx, http.MethodGet, "/applications/my-applications", nil, token, nil, &out, "my_applications"); err != nil {
		return nil, err
	}
	return out, nil
}

// WorkerProfileInput is the create/update payload for a worker profile.
type WorkerProfileInput struct {
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	Category        string   `json:"category"`
	Skills          []string `json:"skills"`
	HourlyRate      float64  `json:"hourly_rate"`
	ExperienceYears int      `json:"experience_years"`
	Location        string   `json:"location"`
	PortfolioLinks  []string `json:"portfolio_links"`
}

// MyWorkerProfile fetches the authenticated worker's own profile. Returns an
// error satisfying errors.Is(err, domain.ErrNotFound) when none exists yet.
func (c *Client) MyWorkerProfile(ctx context.Context, token string) (*domain.WorkerProfile, error) {
	var out domain.WorkerProfile
	if err := c.do(ctx, http.MethodGet, "/workers/profile", nil, token, nil, &out, "worker_profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveWorkerProfile creates (POST) or updates (PUT) the authenticated
// worker's profile; update is chosen when a profile already exists.
func (c *Client) SaveWorkerProfile(ctx context.Context, token string, in WorkerProfileInput, update bool) (*domain.WorkerProfile, error) {
	method := http.MethodPost
	endpoint := "worker_profile_create"
	if update {
		method = http.MethodPut
		endpoint = "worker_profile_update"
	}
	var out domain.WorkerProfile
	if err := c.do(ctx, method, "/workers/profile", nil, token, in, &out, endpoint); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClientProfileInput is the creation payload for a client company profile.
type ClientProfileInput struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size,omitempty"`
	Location    string `json:"location"`
	Website     string `json:"website,omitempty"`
}

// MyClientProfile fetches the authenticated client's own profile. Returns an
// error satisfying errors.Is(err, domain.ErrNotFound) when none exists yet.
func (c *Client) MyClientProfile(ctx context.Context, token string) (*domain.ClientProfile, error) {
	var out domain.ClientProfile
	if err := c.do(ctx, http.MethodGet, "/clients/profile", nil, token, nil, &out, "client_profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClientProfile creates the authenticated client's company profile.
func (c *Client) CreateClientProfile(ctx context.Context, token string, in ClientProfileInput) (*domain.ClientProfile, error) {
	var out domain.ClientProfile
	if err := c.do(ctx, http.MethodPost, "/clients/profile", nil, token, in, &out, "client_profile_create"); err != nil {
		return nil, err
	}
	return &out, nil
}
