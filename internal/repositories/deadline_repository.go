package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/oknkahraman/appustabul/internal/models"
)

type DeadlineRepository struct {
	db *gorm.DB
}

func NewDeadlineRepository(db *gorm.DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

// Upsert records or replaces the pending deadline for a job.
func (r *DeadlineRepository) Upsert(ctx context.Context, jobID string, fireAt time.Time) error {
	deadline := &model.CompletionDeadline{
		JobID:  jobID,
		FireAt: fireAt,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"fire_at"}),
		}).
		Create(deadline).Error
}

func (r *DeadlineRepository) Delete(ctx context.Context, jobID string) error {
	return r.db.WithContext(ctx).
		Delete(&model.CompletionDeadline{}, "job_id = ?", jobID).Error
}

func (r *DeadlineRepository) List(ctx context.Context) ([]model.CompletionDeadline, error) {
	var deadlines []model.CompletionDeadline
	err := r.db.WithContext(ctx).Order("fire_at asc").Find(&deadlines).Error
	return deadlines, err
}
