package domain

import "time"

// JobStatus is the lifecycle state of a job posting. Only "open" jobs
// accept applications; any other value renders as read-only.
type JobStatus string

const (
	JobOpen JobStatus = "open"
)

// BudgetType distinguishes hourly engagements from fixed-price work.
type BudgetType string

const (
	BudgetHourly BudgetType = "hourly"
	BudgetFixed  BudgetType = "fixed"
)

// JobType is the working arrangement of a posting.
type JobType string

const (
	JobRemote JobType = "remote"
	JobOnsite JobType = "onsite"
	JobHybrid JobType = "hybrid"
)

// Job is a posting owned by a client, read by any visitor.
type Job struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Subcategory    string     `json:"subcategory"`
	BudgetType     BudgetType `json:"budget_type"`
	BudgetAmount   float64    `json:"budget_amount"`
	Location       string     `json:"location"`
	JobType        JobType    `json:"job_type"`
	SkillsRequired []string   `json:"skills_required"`
	Status         JobStatus  `json:"status"`
	ClientID       string     `json:"client_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Open reports whether the job still accepts applications.
func (j *Job) Open() bool {
	return j.Status == JobOpen
}
