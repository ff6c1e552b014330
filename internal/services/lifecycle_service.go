package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oknkahraman/appustabul/internal/constants"
	apperrors "github.com/oknkahraman/appustabul/internal/errors"
	"github.com/oknkahraman/appustabul/internal/events"
	model "github.com/oknkahraman/appustabul/internal/models"
	"github.com/oknkahraman/appustabul/internal/queue"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

// deadlineScheduler is the slice of the completion scheduler the
// lifecycle service needs: arm on start of work, disarm on an explicit
// finalize.
type deadlineScheduler interface {
	Arm(jobID string, fireAt time.Time)
	Disarm(jobID string)
}

// LifecycleService owns every Job and Application state transition.
// Transitions apply atomically; event publication and everything
// downstream of it happens after commit and never rolls a transition
// back.
type LifecycleService struct {
	db        *gorm.DB
	jobs      *repository.JobRepository
	apps      *repository.ApplicationRepository
	scheduler deadlineScheduler
	events    queue.EventQueue
	window    time.Duration
}

func NewLifecycleService(
	db *gorm.DB,
	jobs *repository.JobRepository,
	apps *repository.ApplicationRepository,
	scheduler deadlineScheduler,
	eventQueue queue.EventQueue,
	guaranteeWindow time.Duration,
) *LifecycleService {
	return &LifecycleService{
		db:        db,
		jobs:      jobs,
		apps:      apps,
		scheduler: scheduler,
		events:    eventQueue,
		window:    guaranteeWindow,
	}
}

func (s *LifecycleService) CreateJob(ctx context.Context, employerID, title, description string, startDate, endDate time.Time, budgetInfo *string) (*model.Job, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, apperrors.ErrJobFieldsRequired
	}
	if !startDate.Before(endDate) {
		return nil, apperrors.ErrInvalidDates
	}

	job, err := s.jobs.Create(ctx, employerID, title, description, startDate, endDate, budgetInfo)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:       events.JobOpened,
		JobID:      job.ID,
		JobTitle:   job.Title,
		EmployerID: job.EmployerID,
	})

	return job, nil
}

func (s *LifecycleService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *LifecycleService) ListJobs(ctx context.Context, status constants.JobStatus) ([]model.Job, error) {
	return s.jobs.List(ctx, status)
}

func (s *LifecycleService) RecordView(ctx context.Context, jobID string) error {
	if err := s.jobs.IncrementViewCount(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrJobNotFound
		}
		return err
	}
	return nil
}

func (s *LifecycleService) Apply(ctx context.Context, workerID, jobID string) (*model.Application, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != constants.JobOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	if _, err := s.apps.FindByJobAndWorker(ctx, jobID, workerID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	app, err := s.apps.Create(ctx, jobID, workerID)
	if err != nil {
		// Two concurrent applies race past the existence check; the
		// unique (job_id, worker_id) index decides the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:       events.ApplicationSubmitted,
		JobID:      job.ID,
		JobTitle:   job.Title,
		EmployerID: job.EmployerID,
		WorkerID:   workerID,
	})

	return app, nil
}

func (s *LifecycleService) ListApplications(ctx context.Context, employerID, jobID string) ([]model.Application, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.EmployerID != employerID {
		return nil, apperrors.ErrNotJobOwner
	}

	return s.apps.ListByJob(ctx, jobID)
}

// AcceptApplication accepts one application and rejects every other
// applied sibling on the same job as one transaction. The job row's
// version check makes a concurrent acceptance lose cleanly; nothing is
// observable half-applied.
func (s *LifecycleService) AcceptApplication(ctx context.Context, employerID, applicationID string) (*model.Application, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, err
	}

	job, err := s.GetJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}

	if job.EmployerID != employerID {
		return nil, apperrors.ErrNotJobOwner
	}
	if app.Status.Decided() {
		return nil, apperrors.ErrApplicationNotPending
	}
	if job.Status != constants.JobOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	now := time.Now().UTC()
	var rejectedWorkerIDs []string

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txApps := s.apps.WithTx(tx)
		txJobs := s.jobs.WithTx(tx)

		siblings, err := txApps.ListPendingSiblings(ctx, job.ID, app.ID)
		if err != nil {
			return err
		}

		if err := txApps.Decide(ctx, app.ID, constants.ApplicationAccepted, now); err != nil {
			return err
		}

		if err := txApps.RejectPendingSiblings(ctx, job.ID, app.ID, now); err != nil {
			return err
		}

		job.Status = constants.JobMatched
		job.MatchedApplicationID = &app.ID
		if err := txJobs.UpdateState(ctx, job); err != nil {
			return err
		}

		for _, sibling := range siblings {
			rejectedWorkerIDs = append(rejectedWorkerIDs, sibling.WorkerID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOptimisticLock) {
			return nil, apperrors.ErrJobNotOpen
		}
		return nil, err
	}

	app.Status = constants.ApplicationAccepted
	app.DecidedAt = &now

	s.publish(ctx, events.Event{
		Type:       events.ApplicationAccepted,
		JobID:      job.ID,
		JobTitle:   job.Title,
		EmployerID: job.EmployerID,
		WorkerID:   app.WorkerID,
	})

	if len(rejectedWorkerIDs) > 0 {
		s.publish(ctx, events.Event{
			Type:              events.ApplicationsAutoRejected,
			JobID:             job.ID,
			JobTitle:          job.Title,
			EmployerID:        job.EmployerID,
			RejectedWorkerIDs: rejectedWorkerIDs,
		})
	}

	return app, nil
}

// StartWork moves a matched job to in_progress and arms the
// guarantee-window deadline that auto-completes it.
func (s *LifecycleService) StartWork(ctx context.Context, employerID, jobID string) (*model.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.EmployerID != employerID {
		return nil, apperrors.ErrNotJobOwner
	}
	if job.Status != constants.JobMatched {
		return nil, apperrors.ErrJobNotMatched
	}

	job.Status = constants.JobInProgress
	if err := s.jobs.UpdateState(ctx, job); err != nil {
		if errors.Is(err, repository.ErrOptimisticLock) {
			return nil, apperrors.ErrJobNotMatched
		}
		return nil, err
	}

	s.scheduler.Arm(job.ID, time.Now().UTC().Add(s.window))

	s.publish(ctx, events.Event{
		Type:       events.JobStarted,
		JobID:      job.ID,
		JobTitle:   job.Title,
		EmployerID: job.EmployerID,
		WorkerID:   s.matchedWorkerID(ctx, job),
	})

	return job, nil
}

// FinalizeCompletion is the explicit terminal transition. Outcome
// completed requires in_progress and may be triggered by the job's
// employer or the system actor; cancelled is allowed from open, matched
// and in_progress, employer only.
func (s *LifecycleService) FinalizeCompletion(ctx context.Context, actorID, jobID string, outcome constants.JobStatus) (*model.Job, error) {
	if outcome != constants.JobCompleted && outcome != constants.JobCancelled {
		return nil, apperrors.ErrInvalidOutcome
	}

	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	system := actorID == constants.SystemActorID
	if !system && job.EmployerID != actorID {
		return nil, apperrors.ErrNotJobOwner
	}
	if system && outcome != constants.JobCompleted {
		return nil, apperrors.ErrInvalidOutcome
	}

	switch outcome {
	case constants.JobCompleted:
		if job.Status != constants.JobInProgress {
			if job.Status.Terminal() {
				return nil, apperrors.ErrJobFinalized
			}
			return nil, apperrors.ErrJobNotInProgress
		}
	case constants.JobCancelled:
		if job.Status.Terminal() {
			return nil, apperrors.ErrJobFinalized
		}
	}

	job.Status = outcome
	if err := s.jobs.UpdateState(ctx, job); err != nil {
		if errors.Is(err, repository.ErrOptimisticLock) {
			return nil, apperrors.ErrJobFinalized
		}
		return nil, err
	}

	s.scheduler.Disarm(job.ID)

	eventType := events.JobCompleted
	if outcome == constants.JobCancelled {
		eventType = events.JobCancelled
	}
	s.publish(ctx, events.Event{
		Type:       eventType,
		JobID:      job.ID,
		JobTitle:   job.Title,
		EmployerID: job.EmployerID,
		WorkerID:   s.matchedWorkerID(ctx, job),
	})

	return job, nil
}

// AutoComplete is the scheduler's completion path. Racing an explicit
// finalize is expected; whoever transitions first wins and the loser is
// a logged no-op, never an error.
func (s *LifecycleService) AutoComplete(jobID string) {
	ctx := context.Background()

	_, err := s.FinalizeCompletion(ctx, constants.SystemActorID, jobID, constants.JobCompleted)
	if err == nil {
		log.Printf("job %s auto-completed after guarantee window", jobID)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrJobFinalized),
		errors.Is(err, apperrors.ErrJobNotInProgress),
		errors.Is(err, apperrors.ErrJobNotFound):
		log.Printf("auto-complete for job %s skipped: %v", jobID, err)
	default:
		log.Printf("auto-complete for job %s failed: %v", jobID, err)
	}
}

// matchedWorkerID resolves the accepted worker for notification fan-out;
// missing data degrades to an event without a worker recipient.
func (s *LifecycleService) matchedWorkerID(ctx context.Context, job *model.Job) string {
	if job.MatchedApplicationID == nil {
		return ""
	}

	app, err := s.apps.FindByID(ctx, *job.MatchedApplicationID)
	if err != nil {
		log.Printf("matched application %s for job %s not found: %v", *job.MatchedApplicationID, job.ID, err)
		return ""
	}

	return app.WorkerID
}

func (s *LifecycleService) publish(ctx context.Context, e events.Event) {
	payload, err := events.Encode(e)
	if err != nil {
		log.Printf("failed to encode %s event for job %s: %v", e.Type, e.JobID, err)
		return
	}

	if err := s.events.Publish(ctx, payload); err != nil {
		log.Printf("failed to publish %s event for job %s: %v", e.Type, e.JobID, err)
	}
}
