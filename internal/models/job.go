package model

import (
	"time"

	"github.com/oknkahraman/appustabul/internal/constants"
)

// Job is never physically deleted; cancellation is a terminal status.
// MatchedApplicationID is non-null exactly when the status is matched,
// in_progress or completed. Version backs optimistic locking on every
// state transition.
type Job struct {
	ID                   string              `gorm:"primaryKey;size:36" json:"id"`
	EmployerID           string              `gorm:"not null;index" json:"employer_id"`
	Title                string              `gorm:"not null" json:"title"`
	Description          string              `gorm:"not null" json:"description"`
	StartDate            time.Time           `gorm:"not null" json:"start_date"`
	EndDate              time.Time           `gorm:"not null" json:"end_date"`
	BudgetInfo           *string             `json:"budget_info,omitempty"`
	Status               constants.JobStatus `gorm:"type:varchar(20);not null;index" json:"job_status"`
	ViewCount            int64               `gorm:"not null;default:0" json:"view_count"`
	MatchedApplicationID *string             `gorm:"size:36" json:"matched_application_id,omitempty"`
	Version              uint                `gorm:"not null;default:1" json:"-"`
	CreatedAt            time.Time           `json:"created_at"`
	ExpiresAt            time.Time           `json:"expires_at"`
}

type Application struct {
	ID        string                      `gorm:"primaryKey;size:36" json:"id"`
	JobID     string                      `gorm:"not null;uniqueIndex:idx_job_worker" json:"job_id"`
	WorkerID  string                      `gorm:"not null;uniqueIndex:idx_job_worker" json:"worker_id"`
	Status    constants.ApplicationStatus `gorm:"type:varchar(20);not null" json:"status"`
	AppliedAt time.Time                   `json:"applied_at"`
	DecidedAt *time.Time                  `json:"decided_at,omitempty"`
}
