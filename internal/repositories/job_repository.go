package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oknkahraman/appustabul/internal/constants"
	model "github.com/oknkahraman/appustabul/internal/models"
)

// ErrOptimisticLock is returned when a version-conditioned update
// matched no row, meaning a concurrent transition got there first.
var ErrOptimisticLock = errors.New("optimistic locking conflict")

const jobPostingTTL = 30 * 24 * time.Hour

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given
// transaction handle.
func (r *JobRepository) WithTx(tx *gorm.DB) *JobRepository {
	return &JobRepository{db: tx}
}

func (r *JobRepository) Create(ctx context.Context, employerID, title, description string, startDate, endDate time.Time, budgetInfo *string) (*model.Job, error) {
	now := time.Now().UTC()
	job := &model.Job{
		ID:          uuid.NewString(),
		EmployerID:  employerID,
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		BudgetInfo:  budgetInfo,
		Status:      constants.JobOpen,
		ViewCount:   0,
		Version:     1,
		CreatedAt:   now,
		ExpiresAt:   now.Add(jobPostingTTL),
	}

	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}

	return job, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) List(ctx context.Context, status constants.JobStatus) ([]model.Job, error) {
	var jobs []model.Job
	query := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

// UpdateState writes the job's status and matched application id,
// conditioned on the version the caller read. A stale version returns
// ErrOptimisticLock and leaves the row untouched.
func (r *JobRepository) UpdateState(ctx context.Context, job *model.Job) error {
	res := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ? AND version = ?", job.ID, job.Version).
		Updates(map[string]interface{}{
			"status":                 job.Status,
			"matched_application_id": job.MatchedApplicationID,
			"version":                gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	job.Version++
	return nil
}

// IncrementViewCount is a plain unconditional increment; lost updates
// between concurrent viewers are acceptable for a display counter.
func (r *JobRepository) IncrementViewCount(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *JobRepository) CountByEmployer(ctx context.Context, employerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("employer_id = ?", employerID).
		Count(&count).Error
	return count, err
}

func (r *JobRepository) CountByEmployerAndStatus(ctx context.Context, employerID string, status constants.JobStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("employer_id = ? AND status = ?", employerID, status).
		Count(&count).Error
	return count, err
}
