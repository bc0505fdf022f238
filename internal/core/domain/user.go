package domain

import "time"

// Role identifies which side of the marketplace a user acts on.
type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
)

// Valid reports whether the role is one of the two marketplace roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleWorker
}

// DashboardPath returns the dashboard route owned by the role.
func (r Role) DashboardPath() string {
	if r == RoleClient {
		return "/client-dashboard"
	}
	return "/worker-dashboard"
}

// User models an authenticated marketplace account as returned by the
// backend. The password never crosses this boundary.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	UserType  Role      `json:"user_type"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
