package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/talentbridge/marketplace-web/internal/core/domain"
)

// Categories fetches the read-only category taxonomy.
func (c *Client) Categories(ctx context.Context) (domain.CategoryMap, error) {
	var out domain.CategoryMap
	if err := c.do(ctx, http.MethodGet, "/categories", nil, "", nil, &out, "categories"); err != nil {
		return nil, err
	}
	return out, nil
}

// Pricing fetches the subscription plans and commission structure.
func (c *Client) Pricing(ctx context.Context) (*domain.Pricing, error) {
	var out domain.Pricing
	if err := c.do(ctx, http.MethodGet, "/pricing/plans", nil, "", nil, &out, "pricing"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Jobs lists open jobs matching the given filter query. Empty filters list
// everything.
func (c *Client) Jobs(ctx context.Context, query url.Values) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", query, "", nil, &out, "jobs"); err != nil {
		return nil, err
	}
	return out, nil
}

// Job fetches a single job by identifier.
func (c *Client) Job(ctx context.Context, id string) (*domain.Job, error) {
	var out domain.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, "", nil, &out, "job"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workers lists worker profiles matching the given filter query.
func (c *Client) Workers(ctx context.Context, query url.Values) ([]domain.WorkerProfile, error) {
	var out []domain.WorkerProfile
	if err := c.do(ctx, http.MethodGet, "/workers", query, "", nil, &out, "workers"); err != nil {
		return nil, err
	}
	return out, nil
}

// Worker fetches a single worker profile by identifier.
func (c *Client) Worker(ctx context.Context, id string) (*domain.WorkerProfile, error) {
	var out domain.WorkerProfile
	if err := c.do(ctx, http.MethodGet, "/workers/"+url.PathEscape(id), nil, "", nil, &out, "worker"); err != nil {
		return nil, err
	}
	return &out, nil
}
