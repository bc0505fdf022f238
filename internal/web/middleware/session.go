// Package middleware carries the gateway's echo middleware: session
// restoration and the route guards that gate the role-specific pages.
package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace-web/internal/session"
)

const sessionContextKey = "tb.session"

// LoadSession restores the session cookie pair once per request and places
// the result (possibly nil) into the echo context for handlers and guards.
func LoadSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := store.Restore(c.Request(), c.Response())
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// CurrentSession returns the restored session for this request, or nil when
// the visitor is not logged in.
func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}
