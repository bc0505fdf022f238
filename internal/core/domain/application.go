package domain

import "time"

// ApplicationStatus tracks a worker's application through the client's
// decision. The gateway only displays it; transitions happen backend-side.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a worker's proposal against an open job.
type Application struct {
	ID           string            `json:"id"`
	JobID        string            `json:"job_id"`
	JobTitle     string            `json:"job_title,omitempty"`
	WorkerID     string            `json:"worker_id,omitempty"`
	CoverLetter  string            `json:"cover_letter"`
	ProposedRate float64           `json:"proposed_rate"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at,omitzero"`
}
