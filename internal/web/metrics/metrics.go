// Package metrics defines and registers all custom Prometheus metrics for
// the TalentBridge web gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default registry at package init; expose them by
// mounting promhttp (done in the router).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "talentbridge"

// ── Backend API metrics ───────────────────────────────────────────────────────

// BackendRequestsTotal counts calls issued to the marketplace API.
// Labels:
//   - endpoint: the logical endpoint name (e.g. "jobs", "auth_login")
//   - status: the HTTP status class returned ("2xx", "4xx", "5xx", "error")
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the marketplace API.",
	},
	[]string{"endpoint", "status"},
)

// BackendRequestDuration measures marketplace API round-trip time.
// Label:
//   - endpoint: the logical endpoint name
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Round-trip duration of marketplace API requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint"},
)

// ── Catalog browse metrics ────────────────────────────────────────────────────

// BrowseStaleDropsTotal counts catalog responses discarded because a newer
// fetch had already been issued for the same controller.
// Label:
//   - catalog: "jobs" or "workers"
var BrowseStaleDropsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "browse_stale_drops_total",
		Help:      "Catalog fetch responses discarded as stale (superseded by a newer fetch).",
	},
	[]string{"catalog"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsRestoredTotal counts session restore outcomes per request.
// Label:
//   - result: "ok" (both halves present and valid), "split" (one half
//     missing, pair cleared), "expired" (token past its exp claim), "none"
var SessionsRestoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_restored_total",
		Help:      "Session restore attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// ReferenceCacheTotal counts reference-data cache decisions.
// Labels:
//   - dataset: "categories" or "pricing"
//   - result: "hit", "miss", or "bypass" (cache unavailable)
var ReferenceCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reference_cache_total",
		Help:      "Reference-data cache lookups, labelled by dataset and result.",
	},
	[]string{"dataset", "result"},
)
