// Package cache serves the marketplace's read-only reference data
// (category taxonomy, pricing plans) through a Redis cache-aside layer.
// The data changes rarely but is fetched on every page view, so a short TTL
// spares the backend without any invalidation protocol. When Redis is
// unavailable the layer degrades to direct fetches.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/web/metrics"
)

const (
	categoriesKey = "ref:categories"
	pricingKey    = "ref:pricing"
)

// Reference is the cached view over the backend's reference endpoints.
type Reference struct {
	rdb *redis.Client // nil when the cache is disabled
	api *backend.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewReference creates the layer. rdb may be nil, in which case every read
// goes straight to the backend.
func NewReference(rdb *redis.Client, api *backend.Client, ttl time.Duration, log zerolog.Logger) *Reference {
	return &Reference{rdb: rdb, api: api, ttl: ttl, log: log}
}

// Categories returns the category taxonomy, cached.
func (r *Reference) Categories(ctx context.Context) (domain.CategoryMap, error) {
	return fetch(ctx, r, categoriesKey, "categories", r.api.Categories)
}

// Pricing returns the plans and commission structure, cached.
func (r *Reference) Pricing(ctx context.Context) (*domain.Pricing, error) {
	return fetch(ctx, r, pricingKey, "pricing", r.api.Pricing)
}

// fetch implements cache-aside: read-through on hit, backend fetch plus
// best-effort SET on miss, plain backend fetch when the cache is down.
func fetch[T any](ctx context.Context, r *Reference, key, dataset string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.rdb == nil {
		metrics.ReferenceCacheTotal.WithLabelValues(dataset, "bypass").Inc()
		return load(ctx)
	}

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if jerr := json.Unmarshal(raw, &cached); jerr == nil {
			metrics.ReferenceCacheTotal.WithLabelValues(dataset, "hit").Inc()
			return cached, nil
		}
		// Undecodable entry: fall through and overwrite it.
		r.log.Warn().Str("key", key).Msg("dropping undecodable cache entry")
	case err != redis.Nil:
		metrics.ReferenceCacheTotal.WithLabelValues(dataset, "bypass").Inc()
		r.log.Warn().Err(err).Str("key", key).Msg("reference cache unavailable")
		return load(ctx)
	}

	metrics.ReferenceCacheTotal.WithLabelValues(dataset, "miss").Inc()
	value, err := load(ctx)
	if err != nil {
		return zero, err
	}
	if payload, jerr := json.Marshal(value); jerr == nil {
		if serr := r.rdb.Set(ctx, key, payload, r.ttl).Err(); serr != nil {
			r.log.Warn().Err(serr).Str("key", key).Msg("reference cache write failed")
		}
	}
	return value, nil
}
