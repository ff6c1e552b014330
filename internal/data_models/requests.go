package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type WorkerProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	District  string `json:"district"`
}

type EmployerProfileRequest struct {
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	City        string `json:"city"`
	District    string `json:"district"`
}

type WorkerSkillRequest struct {
	SkillCategoryID   string `json:"skill_category_id"`
	YearsOfExperience int    `json:"years_of_experience"`
	IsPrimary         bool   `json:"is_primary"`
}

type CreateJobRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	BudgetInfo  *string   `json:"budget_info,omitempty"`
}

type ApplyRequest struct {
	JobID string `json:"job_id"`
}

type FinalizeJobRequest struct {
	Outcome string `json:"outcome"`
}

type RatingRequest struct {
	JobID        string  `json:"job_id"`
	RateeID      string  `json:"ratee_id"`
	Score        int     `json:"score"`
	PaymentScore *int    `json:"payment_score,omitempty"`
	Comment      *string `json:"comment,omitempty"`
}
