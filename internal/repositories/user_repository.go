package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oknkahraman/appustabul/internal/constants"
	model "github.com/oknkahraman/appustabul/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, role constants.UserRole) (*model.User, error) {
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *UserRepository) CreateWorkerProfile(ctx context.Context, profile *model.WorkerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *UserRepository) FindWorkerProfile(ctx context.Context, userID string) (*model.WorkerProfile, error) {
	var profile model.WorkerProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) ListWorkerProfiles(ctx context.Context) ([]model.WorkerProfile, error) {
	var profiles []model.WorkerProfile
	err := r.db.WithContext(ctx).Find(&profiles).Error
	return profiles, err
}

func (r *UserRepository) CreateEmployerProfile(ctx context.Context, profile *model.EmployerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *UserRepository) FindEmployerProfile(ctx context.Context, userID string) (*model.EmployerProfile, error) {
	var profile model.EmployerProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) ListEmployerProfiles(ctx context.Context) ([]model.EmployerProfile, error) {
	var profiles []model.EmployerProfile
	err := r.db.WithContext(ctx).Find(&profiles).Error
	return profiles, err
}

// UpdateWorkerAggregates overwrites the derived worker counters with
// freshly recomputed values.
func (r *UserRepository) UpdateWorkerAggregates(ctx context.Context, userID string, averageRating float64, totalJobsCompleted int64) error {
	return r.db.WithContext(ctx).Model(&model.WorkerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"average_rating":       averageRating,
			"total_jobs_completed": totalJobsCompleted,
		}).Error
}

// UpdateEmployerAggregates overwrites the derived employer counters
// with freshly recomputed values.
func (r *UserRepository) UpdateEmployerAggregates(ctx context.Context, userID string, averageRating, paymentReliability float64, totalJobsPosted, cancellationCount int64) error {
	return r.db.WithContext(ctx).Model(&model.EmployerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"average_rating":            averageRating,
			"payment_reliability_score": paymentReliability,
			"total_jobs_posted":         totalJobsPosted,
			"cancellation_count":        cancellationCount,
		}).Error
}
