package model

import "time"

type Notification struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"not null;index" json:"user_id"`
	Type         string    `gorm:"not null" json:"type"`
	Title        string    `gorm:"not null" json:"title"`
	Message      string    `json:"message"`
	RelatedJobID *string   `gorm:"size:36" json:"related_job_id,omitempty"`
	IsRead       bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}
