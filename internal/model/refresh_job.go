package model

import "time"

// RefreshJob asks a worker to re-fetch managed laws. Empty Names means the
// whole catalog.
type RefreshJob struct {
	JobID       string    `json:"job_id"`
	Names       []string  `json:"names,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}
