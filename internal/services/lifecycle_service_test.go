package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oknkahraman/appustabul/internal/constants"
	apperrors "github.com/oknkahraman/appustabul/internal/errors"
)

func TestCreateJob_RejectsInvalidDates(t *testing.T) {
	f := newFixture(t)
	employer := f.createEmployer(t, "employer1")

	start := time.Now().UTC().Add(48 * time.Hour)
	end := start.Add(-24 * time.Hour)

	_, err := f.lifecycle.CreateJob(context.Background(), employer.ID, "Boya işi", "Daire boyası", start, end, nil)
	if !errors.Is(err, apperrors.ErrInvalidDates) {
		t.Errorf("expected ErrInvalidDates, got %v", err)
	}

	_, err = f.lifecycle.CreateJob(context.Background(), employer.ID, "Boya işi", "Daire boyası", start, start, nil)
	if !errors.Is(err, apperrors.ErrInvalidDates) {
		t.Errorf("expected ErrInvalidDates for equal dates, got %v", err)
	}
}

func TestCreateJob_RequiresTextFields(t *testing.T) {
	f := newFixture(t)
	employer := f.createEmployer(t, "employer1")

	start := time.Now().UTC()
	end := start.Add(24 * time.Hour)

	_, err := f.lifecycle.CreateJob(context.Background(), employer.ID, "  ", "Daire boyası", start, end, nil)
	if !errors.Is(err, apperrors.ErrJobFieldsRequired) {
		t.Errorf("expected ErrJobFieldsRequired, got %v", err)
	}
}

func TestApply_CreatesSingleApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	worker := f.createWorker(t, "worker1")
	job := f.createOpenJob(t, employer.ID)

	app, err := f.lifecycle.Apply(ctx, worker.ID, job.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if app.Status != constants.ApplicationApplied {
		t.Errorf("expected status %s, got %s", constants.ApplicationApplied, app.Status)
	}

	_, err = f.lifecycle.Apply(ctx, worker.ID, job.ID)
	if !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}

	apps, _ := f.apps.ListByJob(ctx, job.ID)
	if len(apps) != 1 {
		t.Errorf("expected 1 application row, got %d", len(apps))
	}
}

func TestApply_FailsWhenJobNotOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	workerA := f.createWorker(t, "workerA")
	workerB := f.createWorker(t, "workerB")
	job := f.createOpenJob(t, employer.ID)

	app, _ := f.lifecycle.Apply(ctx, workerA.ID, job.ID)
	if _, err := f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	_, err := f.lifecycle.Apply(ctx, workerB.ID, job.ID)
	if !errors.Is(err, apperrors.ErrJobNotOpen) {
		t.Errorf("expected ErrJobNotOpen, got %v", err)
	}
}

func TestAcceptApplication_SingleAcceptanceInvariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	workerA := f.createWorker(t, "workerA")
	workerB := f.createWorker(t, "workerB")
	job := f.createOpenJob(t, employer.ID)

	appA, _ := f.lifecycle.Apply(ctx, workerA.ID, job.ID)
	if _, err := f.lifecycle.Apply(ctx, workerB.ID, job.ID); err != nil {
		t.Fatalf("worker B failed to apply: %v", err)
	}

	accepted, err := f.lifecycle.AcceptApplication(ctx, employer.ID, appA.ID)
	if err != nil {
		t.Fatalf("failed to accept application: %v", err)
	}
	if accepted.Status != constants.ApplicationAccepted {
		t.Errorf("expected accepted status, got %s", accepted.Status)
	}

	updatedJob, _ := f.lifecycle.GetJob(ctx, job.ID)
	if updatedJob.Status != constants.JobMatched {
		t.Errorf("expected job status %s, got %s", constants.JobMatched, updatedJob.Status)
	}
	if updatedJob.MatchedApplicationID == nil || *updatedJob.MatchedApplicationID != appA.ID {
		t.Error("expected matched_application_id to point at the accepted application")
	}

	apps, _ := f.apps.ListByJob(ctx, job.ID)
	var acceptedCount, rejectedCount int
	for _, app := range apps {
		switch app.Status {
		case constants.ApplicationAccepted:
			acceptedCount++
		case constants.ApplicationRejected:
			rejectedCount++
			if app.DecidedAt == nil {
				t.Error("rejected application missing decided_at")
			}
		}
	}
	if acceptedCount != 1 || rejectedCount != 1 {
		t.Errorf("expected 1 accepted and 1 rejected, got %d and %d", acceptedCount, rejectedCount)
	}

	// Fan the emitted events out and check both workers got notified.
	for {
		payload, err := f.queue.Pop(ctx)
		if err != nil {
			break
		}
		if err := f.dispatcher.handlePayload(ctx, payload); err != nil {
			t.Fatalf("dispatcher failed: %v", err)
		}
	}

	notifsA, _ := f.notifs.ListByUser(ctx, workerA.ID)
	if len(notifsA) != 1 || notifsA[0].Type != "application_accepted" {
		t.Errorf("expected one accepted notification for worker A, got %+v", notifsA)
	}

	notifsB, _ := f.notifs.ListByUser(ctx, workerB.ID)
	if len(notifsB) != 1 || notifsB[0].Type != "application_rejected" {
		t.Errorf("expected one rejected notification for worker B, got %+v", notifsB)
	}
}

func TestAcceptApplication_RequiresJobOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	other := f.createEmployer(t, "employer2")
	worker := f.createWorker(t, "worker1")
	job := f.createOpenJob(t, employer.ID)

	app, _ := f.lifecycle.Apply(ctx, worker.ID, job.ID)

	_, err := f.lifecycle.AcceptApplication(ctx, other.ID, app.ID)
	if !errors.Is(err, apperrors.ErrNotJobOwner) {
		t.Errorf("expected ErrNotJobOwner, got %v", err)
	}
}

func TestAcceptApplication_RejectsDecidedApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	worker := f.createWorker(t, "worker1")
	job := f.createOpenJob(t, employer.ID)

	app, _ := f.lifecycle.Apply(ctx, worker.ID, job.ID)
	if _, err := f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	_, err := f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID)
	if !errors.Is(err, apperrors.ErrApplicationNotPending) {
		t.Errorf("expected ErrApplicationNotPending, got %v", err)
	}
}

func TestStartWork_ArmsGuaranteeDeadline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	worker := f.createWorker(t, "worker1")
	job := f.createOpenJob(t, employer.ID)

	app, _ := f.lifecycle.Apply(ctx, worker.ID, job.ID)
	if _, err := f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	before := time.Now().UTC()
	updated, err := f.lifecycle.StartWork(ctx, employer.ID, job.ID)
	if err != nil {
		t.Fatalf("failed to start work: %v", err)
	}
	if updated.Status != constants.JobInProgress {
		t.Errorf("expected status %s, got %s", constants.JobInProgress, updated.Status)
	}

	fireAt, ok := f.scheduler.armed[job.ID]
	if !ok {
		t.Fatal("expected a deadline to be armed for the job")
	}
	if fireAt.Before(before.Add(47*time.Hour)) || fireAt.After(before.Add(49*time.Hour)) {
		t.Errorf("deadline %v not within the guarantee window of %v", fireAt, before)
	}
}

func TestStartWork_RequiresMatchedJob(t *testing.T) {
	f := newFixture(t)

	employer := f.createEmployer(t, "employer1")
	job := f.createOpenJob(t, employer.ID)

	_, err := f.lifecycle.StartWork(context.Background(), employer.ID, job.ID)
	if !errors.Is(err, apperrors.ErrJobNotMatched) {
		t.Errorf("expected ErrJobNotMatched, got %v", err)
	}
}

func TestFinalizeCompletion_WorkerCannotFinalize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	worker := f.createWorker(t, "worker1")
	job := f.createOpenJob(t, employer.ID)

	app, _ := f.lifecycle.Apply(ctx, worker.ID, job.ID)
	_, _ = f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID)
	_, _ = f.lifecycle.StartWork(ctx, employer.ID, job.ID)

	_, err := f.lifecycle.FinalizeCompletion(ctx, worker.ID, job.ID, constants.JobCompleted)
	if !errors.Is(err, apperrors.ErrNotJobOwner) {
		t.Errorf("expected ErrNotJobOwner, got %v", err)
	}
}

func TestFinalizeCompletion_DisarmsDeadline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	worker := f.createWorker(t, "worker1")
	job := f.createOpenJob(t, employer.ID)

	app, _ := f.lifecycle.Apply(ctx, worker.ID, job.ID)
	_, _ = f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID)
	_, _ = f.lifecycle.StartWork(ctx, employer.ID, job.ID)

	if _, err := f.lifecycle.FinalizeCompletion(ctx, employer.ID, job.ID, constants.JobCompleted); err != nil {
		t.Fatalf("failed to finalize: %v", err)
	}

	if _, armed := f.scheduler.armed[job.ID]; armed {
		t.Error("expected deadline to be disarmed after explicit finalize")
	}
}

func TestFinalizeCompletion_TerminalStatesAreFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer, _, job := f.completedJob(t)

	_, err := f.lifecycle.FinalizeCompletion(ctx, employer.ID, job.ID, constants.JobCancelled)
	if !errors.Is(err, apperrors.ErrJobFinalized) {
		t.Errorf("expected ErrJobFinalized, got %v", err)
	}

	_, err = f.lifecycle.FinalizeCompletion(ctx, employer.ID, job.ID, constants.JobCompleted)
	if !errors.Is(err, apperrors.ErrJobFinalized) {
		t.Errorf("expected ErrJobFinalized on completed job, got %v", err)
	}
}

func TestFinalizeCompletion_CancelReachableBeforeTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	worker := f.createWorker(t, "worker1")

	// open -> cancelled
	openJob := f.createOpenJob(t, employer.ID)
	cancelled, err := f.lifecycle.FinalizeCompletion(ctx, employer.ID, openJob.ID, constants.JobCancelled)
	if err != nil {
		t.Fatalf("failed to cancel open job: %v", err)
	}
	if cancelled.Status != constants.JobCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}

	// matched -> cancelled
	matchedJob := f.createOpenJob(t, employer.ID)
	app, _ := f.lifecycle.Apply(ctx, worker.ID, matchedJob.ID)
	_, _ = f.lifecycle.AcceptApplication(ctx, employer.ID, app.ID)
	if _, err := f.lifecycle.FinalizeCompletion(ctx, employer.ID, matchedJob.ID, constants.JobCancelled); err != nil {
		t.Fatalf("failed to cancel matched job: %v", err)
	}
}

func TestFinalizeCompletion_CompletedRequiresInProgress(t *testing.T) {
	f := newFixture(t)

	employer := f.createEmployer(t, "employer1")
	job := f.createOpenJob(t, employer.ID)

	_, err := f.lifecycle.FinalizeCompletion(context.Background(), employer.ID, job.ID, constants.JobCompleted)
	if !errors.Is(err, apperrors.ErrJobNotInProgress) {
		t.Errorf("expected ErrJobNotInProgress, got %v", err)
	}
}

func TestRecordView_IncrementsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	job := f.createOpenJob(t, employer.ID)

	for i := 0; i < 3; i++ {
		if err := f.lifecycle.RecordView(ctx, job.ID); err != nil {
			t.Fatalf("failed to record view: %v", err)
		}
	}

	updated, _ := f.lifecycle.GetJob(ctx, job.ID)
	if updated.ViewCount != 3 {
		t.Errorf("expected view_count 3, got %d", updated.ViewCount)
	}

	if err := f.lifecycle.RecordView(ctx, "missing"); !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestListApplications_RequiresOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employer := f.createEmployer(t, "employer1")
	other := f.createEmployer(t, "employer2")
	worker := f.createWorker(t, "worker1")
	job := f.createOpenJob(t, employer.ID)

	_, _ = f.lifecycle.Apply(ctx, worker.ID, job.ID)

	if _, err := f.lifecycle.ListApplications(ctx, other.ID, job.ID); !errors.Is(err, apperrors.ErrNotJobOwner) {
		t.Errorf("expected ErrNotJobOwner, got %v", err)
	}

	apps, err := f.lifecycle.ListApplications(ctx, employer.ID, job.ID)
	if err != nil {
		t.Fatalf("owner should list applications: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("expected 1 application, got %d", len(apps))
	}
}
