package model

import (
	"time"

	"gorm.io/datatypes"
)

// Run triggers.
const (
	TriggerAPI   = "api"
	TriggerCLI   = "cli"
	TriggerQueue = "queue"
)

// IngestRun records one batch update of managed laws.
type IngestRun struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RunID      string         `gorm:"size:36;not null;uniqueIndex" json:"run_id"`
	Trigger    string         `gorm:"size:16;not null" json:"trigger"`
	Attempted  int            `gorm:"not null" json:"attempted"`
	Succeeded  int            `gorm:"not null" json:"succeeded"`
	Failed     int            `gorm:"not null" json:"failed"`
	Results    datatypes.JSON `json:"results"` // per-document outcomes
	StartedAt  time.Time      `gorm:"index" json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	CreatedAt  time.Time      `json:"created_at"`
}
