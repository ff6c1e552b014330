package services

import (
	"context"
	"log"
	"sync"
	"time"

	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

// SchedulerService guarantees an in_progress job cannot stay that way
// forever: each armed deadline auto-completes its job once the
// guarantee window elapses. Deadlines are persisted so a restart
// re-arms them; firing is idempotent because the completion path
// re-checks job status, so a duplicate or late fire is a no-op.
type SchedulerService struct {
	mu        sync.Mutex
	timers    map[string]*time.Timer
	deadlines *repository.DeadlineRepository
	fire      func(jobID string)
}

func NewSchedulerService(deadlines *repository.DeadlineRepository) *SchedulerService {
	return &SchedulerService{
		timers:    make(map[string]*time.Timer),
		deadlines: deadlines,
	}
}

// Start wires the fire handler and re-arms every persisted deadline.
// Deadlines already past due fire immediately.
func (s *SchedulerService) Start(ctx context.Context, fire func(jobID string)) error {
	s.fire = fire

	pending, err := s.deadlines.List(ctx)
	if err != nil {
		return err
	}

	for _, deadline := range pending {
		s.arm(deadline.JobID, deadline.FireAt)
	}

	if len(pending) > 0 {
		log.Printf("scheduler restored %d pending completion deadlines", len(pending))
	}

	return nil
}

// Arm persists and schedules the deadline for a job, replacing any
// previous one.
func (s *SchedulerService) Arm(jobID string, fireAt time.Time) {
	if err := s.deadlines.Upsert(context.Background(), jobID, fireAt); err != nil {
		// The in-memory timer still covers this process's lifetime.
		log.Printf("failed to persist completion deadline for job %s: %v", jobID, err)
	}

	s.arm(jobID, fireAt)
}

func (s *SchedulerService) arm(jobID string, fireAt time.Time) {
	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[jobID]; ok {
		existing.Stop()
	}

	s.timers[jobID] = time.AfterFunc(delay, func() {
		s.fired(jobID)
	})
}

// Disarm cancels a pending deadline. Calling it for a job without one
// is harmless.
func (s *SchedulerService) Disarm(jobID string) {
	s.mu.Lock()
	if timer, ok := s.timers[jobID]; ok {
		timer.Stop()
		delete(s.timers, jobID)
	}
	s.mu.Unlock()

	if err := s.deadlines.Delete(context.Background(), jobID); err != nil {
		log.Printf("failed to delete completion deadline for job %s: %v", jobID, err)
	}
}

// fired drops only the in-memory timer. The persisted row is deleted by
// the completion path's Disarm once the job actually transitions, so a
// fire that fails transiently leaves the row behind for the next restart
// to re-arm.
func (s *SchedulerService) fired(jobID string) {
	s.mu.Lock()
	delete(s.timers, jobID)
	s.mu.Unlock()

	s.fire(jobID)
}

// Shutdown stops all in-memory timers; persisted rows remain for the
// next start.
func (s *SchedulerService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for jobID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, jobID)
	}
}
