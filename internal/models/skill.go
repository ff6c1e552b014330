package model

import "time"

// SkillCategory is one node of the three-level trade taxonomy
// (main > sub > detail). ParentID is null on main categories.
type SkillCategory struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	ParentID      *string `gorm:"size:36;index" json:"parent_id,omitempty"`
	CategoryName  string  `gorm:"not null" json:"category_name"`
	CategoryLevel string  `gorm:"type:varchar(10);not null" json:"category_level"`
	DisplayOrder  int     `gorm:"not null;default:0" json:"display_order"`
}

const (
	SkillLevelMain   = "main"
	SkillLevelSub    = "sub"
	SkillLevelDetail = "detail"
)

// WorkerSkill links a worker to one taxonomy node, at most once.
type WorkerSkill struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	WorkerID          string    `gorm:"not null;uniqueIndex:idx_worker_skill" json:"worker_id"`
	SkillCategoryID   string    `gorm:"not null;uniqueIndex:idx_worker_skill" json:"skill_category_id"`
	YearsOfExperience int       `gorm:"not null;default:0" json:"years_of_experience"`
	IsPrimary         bool      `gorm:"not null;default:false" json:"is_primary"`
	AddedAt           time.Time `json:"added_at"`
}
