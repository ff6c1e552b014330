package model

import (
	"time"

	"github.com/oknkahraman/appustabul/internal/constants"
)

type User struct {
	ID           string             `gorm:"primaryKey;size:36" json:"id"`
	Username     string             `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string             `gorm:"not null" json:"-"`
	Role         constants.UserRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time          `json:"created_at"`
	LastLogin    *time.Time         `json:"last_login,omitempty"`
}

// WorkerProfile aggregates are owned by the reputation service and are
// always recomputed from source rows, never patched incrementally.
type WorkerProfile struct {
	UserID             string  `gorm:"primaryKey;size:36" json:"user_id"`
	FirstName          string  `gorm:"not null" json:"first_name"`
	LastName           string  `gorm:"not null" json:"last_name"`
	City               string  `json:"city"`
	District           string  `json:"district"`
	TotalJobsCompleted int64   `gorm:"not null;default:0" json:"total_jobs_completed"`
	AverageRating      float64 `gorm:"not null;default:0" json:"average_rating"`
}

type EmployerProfile struct {
	UserID                  string  `gorm:"primaryKey;size:36" json:"user_id"`
	CompanyName             string  `gorm:"not null" json:"company_name"`
	Sector                  string  `json:"sector"`
	City                    string  `json:"city"`
	District                string  `json:"district"`
	PaymentReliabilityScore float64 `gorm:"not null;default:5" json:"payment_reliability_score"`
	CancellationCount       int64   `gorm:"not null;default:0" json:"cancellation_count"`
	TotalJobsPosted         int64   `gorm:"not null;default:0" json:"total_jobs_posted"`
	AverageRating           float64 `gorm:"not null;default:0" json:"average_rating"`
}
