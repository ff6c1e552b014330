package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oknkahraman/appustabul/internal/constants"
	model "github.com/oknkahraman/appustabul/internal/models"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) WithTx(tx *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: tx}
}

func (r *ApplicationRepository) Create(ctx context.Context, jobID, workerID string) (*model.Application, error) {
	app := &model.Application{
		ID:        uuid.NewString(),
		JobID:     jobID,
		WorkerID:  workerID,
		Status:    constants.ApplicationApplied,
		AppliedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}

	return app, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByJobAndWorker(ctx context.Context, jobID, workerID string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		First(&app, "job_id = ? AND worker_id = ?", jobID, workerID).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_at asc").
		Find(&apps).Error
	return apps, err
}

// Decide moves an application out of the applied state. The update is
// conditioned on the current status so a concurrent decision loses with
// zero rows affected rather than overwriting.
func (r *ApplicationRepository) Decide(ctx context.Context, id string, status constants.ApplicationStatus, decidedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ? AND status = ?", id, constants.ApplicationApplied).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": decidedAt,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	return nil
}

// ListPendingSiblings returns the still-applied applications on a job
// other than the one being accepted.
func (r *ApplicationRepository) ListPendingSiblings(ctx context.Context, jobID, exceptID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND id <> ? AND status = ?", jobID, exceptID, constants.ApplicationApplied).
		Find(&apps).Error
	return apps, err
}

// RejectPendingSiblings mass-rejects every other applied application on
// the job in a single statement.
func (r *ApplicationRepository) RejectPendingSiblings(ctx context.Context, jobID, exceptID string, decidedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Application{}).
		Where("job_id = ? AND id <> ? AND status = ?", jobID, exceptID, constants.ApplicationApplied).
		Updates(map[string]interface{}{
			"status":     constants.ApplicationRejected,
			"decided_at": decidedAt,
		}).Error
}

// CountCompletedByWorker counts completed jobs on which the worker's
// application was the accepted one.
func (r *ApplicationRepository) CountCompletedByWorker(ctx context.Context, workerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.worker_id = ? AND applications.status = ? AND jobs.status = ?",
			workerID, constants.ApplicationAccepted, constants.JobCompleted).
		Count(&count).Error
	return count, err
}
