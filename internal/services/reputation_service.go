package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/oknkahraman/appustabul/internal/constants"
	apperrors "github.com/oknkahraman/appustabul/internal/errors"
	model "github.com/oknkahraman/appustabul/internal/models"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

// defaultReliabilityScore is what an employer profile carries until a
// worker has rated the payment dimension at least once.
const defaultReliabilityScore = 5.0

// ReputationService owns the derived profile aggregates. They are
// always recomputed in full from the rating and job rows so they can
// never drift from their sources, whatever partial failures happened
// in between.
type ReputationService struct {
	ratings *repository.RatingRepository
	users   *repository.UserRepository
	jobs    *repository.JobRepository
	apps    *repository.ApplicationRepository
}

func NewReputationService(
	ratings *repository.RatingRepository,
	users *repository.UserRepository,
	jobs *repository.JobRepository,
	apps *repository.ApplicationRepository,
) *ReputationService {
	return &ReputationService{
		ratings: ratings,
		users:   users,
		jobs:    jobs,
		apps:    apps,
	}
}

// SubmitRating records one party's rating of the other for a completed
// job. One rating per (job, rater); both sides must have participated.
func (s *ReputationService) SubmitRating(ctx context.Context, raterID, jobID, rateeID string, score int, paymentScore *int, comment *string) (*model.Rating, error) {
	if score < 1 || score > 5 {
		return nil, apperrors.ErrInvalidScore
	}
	if paymentScore != nil && (*paymentScore < 1 || *paymentScore > 5) {
		return nil, apperrors.ErrInvalidScore
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, err
	}

	if job.Status != constants.JobCompleted {
		return nil, apperrors.ErrJobNotCompleted
	}

	workerID := ""
	if job.MatchedApplicationID != nil {
		app, err := s.apps.FindByID(ctx, *job.MatchedApplicationID)
		if err != nil {
			return nil, err
		}
		workerID = app.WorkerID
	}

	participants := map[string]bool{
		job.EmployerID: true,
		workerID:       workerID != "",
	}
	if !participants[raterID] || !participants[rateeID] || raterID == rateeID {
		return nil, apperrors.ErrNotJobParticipant
	}

	exists, err := s.ratings.ExistsByJobAndRater(ctx, jobID, raterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyRated
	}

	rating, err := s.ratings.Create(ctx, jobID, raterID, rateeID, score, paymentScore, comment)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyRated
		}
		return nil, err
	}

	// The rating row is committed; a recompute failure must not undo
	// it. The next recompute heals the aggregate.
	if err := s.Recompute(ctx, rateeID); err != nil {
		log.Printf("reputation: recompute for %s failed after rating insert: %v", rateeID, err)
	}

	return rating, nil
}

func (s *ReputationService) ListRatings(ctx context.Context, rateeID string) ([]model.Rating, error) {
	return s.ratings.ListByRatee(ctx, rateeID)
}

// Recompute rebuilds every derived aggregate on the user's profile from
// scratch: mean rating (0.0 with no ratings), the employer's payment
// reliability, and the job counters.
func (s *ReputationService) Recompute(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	average, _, err := s.ratings.AverageByRatee(ctx, userID)
	if err != nil {
		return err
	}

	switch user.Role {
	case constants.RoleWorker:
		completed, err := s.apps.CountCompletedByWorker(ctx, userID)
		if err != nil {
			return err
		}
		return s.users.UpdateWorkerAggregates(ctx, userID, average, completed)

	case constants.RoleEmployer:
		reliability, rated, err := s.ratings.PaymentAverageByRatee(ctx, userID)
		if err != nil {
			return err
		}
		if rated == 0 {
			reliability = defaultReliabilityScore
		}

		posted, err := s.jobs.CountByEmployer(ctx, userID)
		if err != nil {
			return err
		}

		cancelled, err := s.jobs.CountByEmployerAndStatus(ctx, userID, constants.JobCancelled)
		if err != nil {
			return err
		}

		return s.users.UpdateEmployerAggregates(ctx, userID, average, reliability, posted, cancelled)
	}

	return nil
}
