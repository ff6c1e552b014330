package model

import "time"

// Rating is created exactly once per (job, rater) after the job reaches
// completed, and is immutable afterwards. PaymentScore is the
// reliability dimension a worker rates an employer on; it is null on
// employer-to-worker ratings.
type Rating struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	JobID        string    `gorm:"not null;uniqueIndex:idx_job_rater" json:"job_id"`
	RaterID      string    `gorm:"not null;uniqueIndex:idx_job_rater" json:"rater_id"`
	RateeID      string    `gorm:"not null;index" json:"ratee_id"`
	Score        int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	PaymentScore *int      `json:"payment_score,omitempty"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
