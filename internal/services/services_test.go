package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oknkahraman/appustabul/internal/constants"
	model "github.com/oknkahraman/appustabul/internal/models"
	"github.com/oknkahraman/appustabul/internal/queue"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

// mockEventQueue is an in-memory queue standing in for Redis.
type mockEventQueue struct {
	mu       sync.Mutex
	payloads []string
}

func (m *mockEventQueue) Publish(ctx context.Context, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payloads = append(m.payloads, payload)
	return nil
}

func (m *mockEventQueue) Pop(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.payloads) == 0 {
		return "", queue.ErrQueueEmpty
	}

	payload := m.payloads[0]
	m.payloads = m.payloads[1:]
	return payload, nil
}

func (m *mockEventQueue) Requeue(ctx context.Context, payload string) error {
	return m.Publish(ctx, payload)
}

// stubScheduler records arm/disarm calls without running timers.
type stubScheduler struct {
	mu       sync.Mutex
	armed    map[string]time.Time
	disarmed []string
}

func newStubScheduler() *stubScheduler {
	return &stubScheduler{armed: make(map[string]time.Time)}
}

func (s *stubScheduler) Arm(jobID string, fireAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed[jobID] = fireAt
}

func (s *stubScheduler) Disarm(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.armed, jobID)
	s.disarmed = append(s.disarmed, jobID)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.WorkerProfile{},
		&model.EmployerProfile{},
		&model.SkillCategory{},
		&model.WorkerSkill{},
		&model.Job{},
		&model.Application{},
		&model.Rating{},
		&model.Notification{},
		&model.CompletionDeadline{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type fixture struct {
	db         *gorm.DB
	users      *repository.UserRepository
	jobs       *repository.JobRepository
	apps       *repository.ApplicationRepository
	ratings    *repository.RatingRepository
	notifs     *repository.NotificationRepository
	deadlines  *repository.DeadlineRepository
	skills     *repository.SkillRepository
	queue      *mockEventQueue
	scheduler  *stubScheduler
	lifecycle  *LifecycleService
	reputation *ReputationService
	dispatcher *DispatcherService
	profiles   *ProfileService
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)

	f := &fixture{
		db:        db,
		users:     repository.NewUserRepository(db),
		jobs:      repository.NewJobRepository(db),
		apps:      repository.NewApplicationRepository(db),
		ratings:   repository.NewRatingRepository(db),
		notifs:    repository.NewNotificationRepository(db),
		deadlines: repository.NewDeadlineRepository(db),
		skills:    repository.NewSkillRepository(db),
		queue:     &mockEventQueue{},
		scheduler: newStubScheduler(),
	}

	f.lifecycle = NewLifecycleService(db, f.jobs, f.apps, f.scheduler, f.queue, 48*time.Hour)
	f.reputation = NewReputationService(f.ratings, f.users, f.jobs, f.apps)
	f.dispatcher = NewDispatcherService(f.queue, f.notifs, f.reputation, time.Second)
	f.profiles = NewProfileService(f.users, f.skills)

	return f
}

func (f *fixture) createEmployer(t *testing.T, username string) *model.User {
	t.Helper()

	user, err := f.users.Create(context.Background(), username, "hash", constants.RoleEmployer)
	if err != nil {
		t.Fatalf("failed to create employer: %v", err)
	}

	err = f.users.CreateEmployerProfile(context.Background(), &model.EmployerProfile{
		UserID:                  user.ID,
		CompanyName:             username + " Ltd",
		PaymentReliabilityScore: 5.0,
	})
	if err != nil {
		t.Fatalf("failed to create employer profile: %v", err)
	}

	return user
}

func (f *fixture) createWorker(t *testing.T, username string) *model.User {
	t.Helper()

	user, err := f.users.Create(context.Background(), username, "hash", constants.RoleWorker)
	if err != nil {
		t.Fatalf("failed to create worker: %v", err)
	}

	err = f.users.CreateWorkerProfile(context.Background(), &model.WorkerProfile{
		UserID:    user.ID,
		FirstName: username,
		LastName:  "Usta",
	})
	if err != nil {
		t.Fatalf("failed to create worker profile: %v", err)
	}

	return user
}

func (f *fixture) createOpenJob(t *testing.T, employerID string) *model.Job {
	t.Helper()

	start := time.Now().UTC().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	job, err := f.lifecycle.CreateJob(context.Background(), employerID, "Kaynak işi", "Paslanmaz korkuluk kaynağı", start, end, nil)
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	return job
}

// completedJob walks a job through the full happy path and returns the
// employer, the accepted worker and the completed job.
func (f *fixture) completedJob(t *testing.T) (*model.User, *model.User, *model.Job) {
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
		t.Fatalf("failed to accept application: %v", err)
	}

	if _, err := f.lifecycle.StartWork(ctx, employer.ID, job.ID); err != nil {
		t.Fatalf("failed to start work: %v", err)
	}

	if _, err := f.lifecycle.FinalizeCompletion(ctx, employer.ID, job.ID, constants.JobCompleted); err != nil {
		t.Fatalf("failed to finalize job: %v", err)
	}

	return employer, worker, job
}
