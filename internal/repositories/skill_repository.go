package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/oknkahraman/appustabul/internal/models"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) CreateCategory(ctx context.Context, category *model.SkillCategory) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// ListCategories returns the whole taxonomy ordered by display_order,
// the order the tree builder relies on for sibling ordering.
func (r *SkillRepository) ListCategories(ctx context.Context) ([]model.SkillCategory, error) {
	var categories []model.SkillCategory
	err := r.db.WithContext(ctx).Order("display_order asc").Find(&categories).Error
	return categories, err
}

func (r *SkillRepository) FindCategoryByID(ctx context.Context, id string) (*model.SkillCategory, error) {
	var category model.SkillCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *SkillRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SkillCategory{}).Count(&count).Error
	return count, err
}

func (r *SkillRepository) AddWorkerSkill(ctx context.Context, workerID, categoryID string, years int, isPrimary bool) (*model.WorkerSkill, error) {
	skill := &model.WorkerSkill{
		ID:                uuid.NewString(),
		WorkerID:          workerID,
		SkillCategoryID:   categoryID,
		YearsOfExperience: years,
		IsPrimary:         isPrimary,
		AddedAt:           time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return nil, err
	}

	return skill, nil
}

func (r *SkillRepository) ListWorkerSkills(ctx context.Context, workerID string) ([]model.WorkerSkill, error) {
	var skills []model.WorkerSkill
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("added_at asc").
		Find(&skills).Error
	return skills, err
}
