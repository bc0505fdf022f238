package domain

import "errors"

var (
	// ErrNotFound maps a backend 404 for any entity fetch.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized maps a backend 401: the session token was missing,
	// expired or rejected.
	ErrUnauthorized = errors.New("unauthorized")
)
