package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/oknkahraman/appustabul/internal/models"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, jobID, raterID, rateeID string, score int, paymentScore *int, comment *string) (*model.Rating, error) {
	rating := &model.Rating{
		ID:           uuid.NewString(),
		JobID:        jobID,
		RaterID:      raterID,
		RateeID:      rateeID,
		Score:        score,
		PaymentScore: paymentScore,
		Comment:      comment,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return nil, err
	}

	return rating, nil
}

func (r *RatingRepository) ExistsByJobAndRater(ctx context.Context, jobID, raterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("job_id = ? AND rater_id = ?", jobID, raterID).
		Count(&count).Error
	return count > 0, err
}

func (r *RatingRepository) ListByRatee(ctx context.Context, rateeID string) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Where("ratee_id = ?", rateeID).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// AverageByRatee recomputes the mean score over every rating row for
// the user; count 0 means no ratings exist.
func (r *RatingRepository) AverageByRatee(ctx context.Context, rateeID string) (float64, int64, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Where("ratee_id = ?", rateeID).
		Find(&ratings).Error
	if err != nil {
		return 0, 0, err
	}

	if len(ratings) == 0 {
		return 0, 0, nil
	}

	var sum int
	for _, rating := range ratings {
		sum += rating.Score
	}

	return float64(sum) / float64(len(ratings)), int64(len(ratings)), nil
}

// PaymentAverageByRatee recomputes the mean of the payment-reliability
// dimension over ratings that carry it.
func (r *RatingRepository) PaymentAverageByRatee(ctx context.Context, rateeID string) (float64, int64, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Where("ratee_id = ? AND payment_score IS NOT NULL", rateeID).
		Find(&ratings).Error
	if err != nil {
		return 0, 0, err
	}

	if len(ratings) == 0 {
		return 0, 0, nil
	}

	var sum int
	for _, rating := range ratings {
		sum += *rating.PaymentScore
	}

	return float64(sum) / float64(len(ratings)), int64(len(ratings)), nil
}
