package model

import "time"

// CompletionDeadline is the persisted half of the guarantee-window
// scheduler: one row per armed deadline, reloaded on process start so a
// restart never loses a pending auto-completion.
type CompletionDeadline struct {
	JobID  string    `gorm:"primaryKey;size:36" json:"job_id"`
	FireAt time.Time `gorm:"not null" json:"fire_at"`
}
