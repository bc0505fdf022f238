// Package backend is the HTTP client for the marketplace REST API. It owns
// request execution against a single base address: URL construction, bearer
// token attachment, JSON encoding/decoding and the mapping of non-2xx
// responses to APIError. There is no retry, timeout escalation or caching
// here; callers decide how to react to each failure.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/web/metrics"
)

const defaultTimeout = 15 * time.Second

// Client executes requests against the marketplace API base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// New creates a Client for the given base URL (including the /api prefix).
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// APIError carries the HTTP status and the backend-supplied message of a
// failed call. Message falls back to a generic string when the body has no
// usable text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// Is maps well-known statuses onto domain sentinels so callers can branch
// with errors.Is without importing transport details.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// errorBody is the union of error envelopes seen from the backend:
// {"detail": ...} from the API itself, {"error"|"message": ...} from
// intermediaries.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Err     string          `json:"error"`
	Message string          `json:"message"`
}

func (b errorBody) text() string {
	if len(b.Detail) > 0 {
		var s string
		if err := json.Unmarshal(b.Detail, &s); err == nil && s != "" {
			return s
		}
		// Validation errors arrive as structured detail; surface them raw
		// rather than dropping the information.
		return string(b.Detail)
	}
	if b.Err != "" {
		return b.Err
	}
	return b.Message
}

// do executes one API call. A non-empty token is attached as a bearer
// credential. body is JSON-encoded when non-nil; out is JSON-decoded into
// when non-nil. endpoint is the logical name used for logging and metrics.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any, endpoint string) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("backend: build %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return fmt.Errorf("backend: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(endpoint, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb)
		msg := eb.text()
		if msg == "" {
			msg = "something went wrong"
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("endpoint", endpoint).Str("message", msg).Msg("backend error response")
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend: decode %s: %w", endpoint, err)
		}
	}
	return nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

// ErrorMessage extracts the user-facing message of an APIError, or a generic
// fallback for transport-level failures.
func ErrorMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return "something went wrong"
}
