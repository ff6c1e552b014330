package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oknkahraman/appustabul/internal/constants"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

// schedulerFixture wires a real SchedulerService into the lifecycle so
// timers actually fire.
type schedulerFixture struct {
	*fixture
	realScheduler *SchedulerService
}

func newSchedulerFixture(t *testing.T, window time.Duration) *schedulerFixture {
	f := newFixture(t)

	realScheduler := NewSchedulerService(f.deadlines)
	f.lifecycle = NewLifecycleService(f.db, f.jobs, f.apps, realScheduler, f.queue, window)

	if err := realScheduler.Start(context.Background(), f.lifecycle.AutoComplete); err != nil {
		t.Fatalf("failed to start scheduler: %v", err)
	}
	t.Cleanup(realScheduler.Shutdown)

	return &schedulerFixture{fixture: f, realScheduler: realScheduler}
}

func (f *schedulerFixture) startInProgressJob(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	employer := f.createEmployer(t, "employer-"+t.Name())
	worker := f.createWorker(t, "worker-"+t.Name())
	job := f.createOpenJob(t, employer.ID)

	app, err := f.lifecycle.Apply(ctx, worker.ID, job.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if _, err := f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}
	if _, err := f.lifecycle.StartWork(ctx, employer.ID, job.ID); err != nil {
		t.Fatalf("failed to start work: %v", err)
	}

	return job.ID
}

func (f *schedulerFixture) waitForStatus(t *testing.T, jobID string, want constants.JobStatus, timeout time.Duration) {
	t.Helper()
	ctx := context.Background()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		job, err := f.lifecycle.GetJob(ctx, jobID)
		if err == nil && job.Status == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	job, _ := f.lifecycle.GetJob(ctx, jobID)
	t.Fatalf("job never reached %s, still %s", want, job.Status)
}

func TestScheduler_AutoCompletesAfterGuaranteeWindow(t *testing.T) {
	f := newSchedulerFixture(t, 80*time.Millisecond)

	jobID := f.startInProgressJob(t)

	// Not before the window elapses.
	job, _ := f.lifecycle.GetJob(context.Background(), jobID)
	if job.Status != constants.JobInProgress {
		t.Fatalf("job should still be in progress, got %s", job.Status)
	}

	f.waitForStatus(t, jobID, constants.JobCompleted, 3*time.Second)

	deadlines, _ := f.deadlines.List(context.Background())
	if len(deadlines) != 0 {
		t.Errorf("expected no pending deadlines after fire, got %d", len(deadlines))
	}
}

func TestScheduler_ExplicitFinalizeWinsTheRace(t *testing.T) {
	f := newSchedulerFixture(t, 150*time.Millisecond)
	ctx := context.Background()

	jobID := f.startInProgressJob(t)

	employerID := func() string {
		job, _ := f.lifecycle.GetJob(ctx, jobID)
		return job.EmployerID
	}()

	if _, err := f.lifecycle.FinalizeCompletion(ctx, employerID, jobID, constants.JobCancelled); err != nil {
		t.Fatalf("failed to cancel: %v", err)
	}

	// Let the original deadline pass; a late fire must not overwrite
	// the terminal state.
	time.Sleep(300 * time.Millisecond)

	job, _ := f.lifecycle.GetJob(ctx, jobID)
	if job.Status != constants.JobCancelled {
		t.Errorf("late timer fire altered a terminal job: %s", job.Status)
	}

	deadlines, _ := f.deadlines.List(ctx)
	if len(deadlines) != 0 {
		t.Errorf("expected deadline row to be removed, got %d", len(deadlines))
	}
}

func TestScheduler_DuplicateFireIsNoOp(t *testing.T) {
	f := newSchedulerFixture(t, 60*time.Millisecond)

	jobID := f.startInProgressJob(t)
	f.waitForStatus(t, jobID, constants.JobCompleted, 3*time.Second)

	// Firing again against the already-completed job must change
	// nothing; idempotency comes from the status check.
	f.lifecycle.AutoComplete(jobID)

	job, _ := f.lifecycle.GetJob(context.Background(), jobID)
	if job.Status != constants.JobCompleted {
		t.Errorf("duplicate fire altered job status: %s", job.Status)
	}
}

func TestScheduler_RestoresPersistedDeadlines(t *testing.T) {
	db := setupTestDB(t)
	deadlines := repository.NewDeadlineRepository(db)
	ctx := context.Background()

	// Simulate deadlines left behind by a previous process, one of
	// them already past due.
	if err := deadlines.Upsert(ctx, "job-overdue", time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("failed to persist deadline: %v", err)
	}
	if err := deadlines.Upsert(ctx, "job-pending", time.Now().UTC().Add(50*time.Millisecond)); err != nil {
		t.Fatalf("failed to persist deadline: %v", err)
	}

	var mu sync.Mutex
	fired := make(map[string]bool)

	scheduler := NewSchedulerService(deadlines)
	err := scheduler.Start(ctx, func(jobID string) {
		mu.Lock()
		fired[jobID] = true
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("failed to start scheduler: %v", err)
	}
	t.Cleanup(scheduler.Shutdown)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := fired["job-overdue"] && fired["job-pending"]
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if !fired["job-overdue"] || !fired["job-pending"] {
		t.Errorf("expected both restored deadlines to fire, got %v", fired)
	}
}

func TestScheduler_RetainsDeadlineWhenFireDoesNotComplete(t *testing.T) {
	db := setupTestDB(t)
	deadlines := repository.NewDeadlineRepository(db)
	ctx := context.Background()

	var mu sync.Mutex
	fired := false

	// The handler stands in for a completion attempt that hits a
	// transient error and never transitions the job.
	scheduler := NewSchedulerService(deadlines)
	if err := scheduler.Start(ctx, func(jobID string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	}); err != nil {
		t.Fatalf("failed to start scheduler: %v", err)
	}
	t.Cleanup(scheduler.Shutdown)

	scheduler.Arm("job-1", time.Now().UTC().Add(40*time.Millisecond))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := fired
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	mu.Lock()
	if !fired {
		mu.Unlock()
		t.Fatal("deadline never fired")
	}
	mu.Unlock()

	// The job never reached a terminal state, so the row must survive
	// for the next restart to re-arm.
	rows, err := deadlines.List(ctx)
	if err != nil {
		t.Fatalf("failed to list deadlines: %v", err)
	}
	if len(rows) != 1 || rows[0].JobID != "job-1" {
		t.Fatalf("expected the deadline row to survive a failed fire, got %v", rows)
	}
}

func TestScheduler_DisarmStopsTimer(t *testing.T) {
	db := setupTestDB(t)
	deadlines := repository.NewDeadlineRepository(db)
	ctx := context.Background()

	var mu sync.Mutex
	firedCount := 0

	scheduler := NewSchedulerService(deadlines)
	if err := scheduler.Start(ctx, func(jobID string) {
		mu.Lock()
		firedCount++
		mu.Unlock()
	}); err != nil {
		t.Fatalf("failed to start scheduler: %v", err)
	}
	t.Cleanup(scheduler.Shutdown)

	scheduler.Arm("job-1", time.Now().UTC().Add(60*time.Millisecond))
	scheduler.Disarm("job-1")

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if firedCount != 0 {
		t.Errorf("disarmed deadline fired %d times", firedCount)
	}

	rows, _ := deadlines.List(ctx)
	if len(rows) != 0 {
		t.Errorf("expected deadline row removed after disarm, got %d", len(rows))
	}
}
