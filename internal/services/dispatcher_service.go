package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/oknkahraman/appustabul/internal/errors"
	"github.com/oknkahraman/appustabul/internal/events"
	model "github.com/oknkahraman/appustabul/internal/models"
	"github.com/oknkahraman/appustabul/internal/queue"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

// DispatcherService drains the event queue into per-user notification
// rows and keeps the read/unread inbox. It runs outside the lifecycle
// transaction: a handling failure requeues the event and is retried,
// never surfacing to the transition that produced it.
type DispatcherService struct {
	queue      queue.EventQueue
	notifs     *repository.NotificationRepository
	reputation *ReputationService
	interval   time.Duration
	stop       chan struct{}
	wg         sync.WaitGroup
}

func NewDispatcherService(
	eventQueue queue.EventQueue,
	notifs *repository.NotificationRepository,
	reputation *ReputationService,
	pollInterval time.Duration,
) *DispatcherService {
	return &DispatcherService{
		queue:      eventQueue,
		notifs:     notifs,
		reputation: reputation,
		interval:   pollInterval,
		stop:       make(chan struct{}),
	}
}

func (d *DispatcherService) Start() {
	d.wg.Add(1)
	go d.loop()
}

func (d *DispatcherService) Shutdown() {
	close(d.stop)
	d.wg.Wait()
}

func (d *DispatcherService) loop() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.drainOnce()
		case <-d.stop:
			return
		}
	}
}

func (d *DispatcherService) drainOnce() {
	ctx := context.Background()

	for {
		payload, err := d.queue.Pop(ctx)
		if err != nil {
			if !errors.Is(err, queue.ErrQueueEmpty) {
				log.Printf("dispatcher: failed to pop event: %v", err)
			}
			return
		}

		if err := d.handlePayload(ctx, payload); err != nil {
			log.Printf("dispatcher: event handling failed, requeueing: %v", err)
			if err := d.queue.Requeue(ctx, payload); err != nil {
				log.Printf("dispatcher: requeue failed, event lost: %v", err)
			}
			return
		}
	}
}

func (d *DispatcherService) handlePayload(ctx context.Context, payload string) error {
	event, err := events.Decode(payload)
	if err != nil {
		// A payload that cannot decode will never decode; drop it
		// instead of requeueing forever.
		log.Printf("dispatcher: dropping undecodable event payload: %v", err)
		return nil
	}

	return d.HandleEvent(ctx, event)
}

// HandleEvent fans one domain event out to its recipients. The switch
// is exhaustive over the event vocabulary; an unknown type is dropped
// with a log line.
func (d *DispatcherService) HandleEvent(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.JobOpened:
		// The employer performed this action; no inbox entry, but the
		// posting counters derive from it.
		return d.reputation.Recompute(ctx, event.EmployerID)

	case events.ApplicationSubmitted:
		_, err := d.notifs.Create(ctx, event.EmployerID, "new_application",
			"Yeni Başvuru",
			fmt.Sprintf("%s ilanınıza yeni bir başvuru yapıldı", event.JobTitle),
			&event.JobID)
		return err

	case events.ApplicationAccepted:
		_, err := d.notifs.Create(ctx, event.WorkerID, "application_accepted",
			"Başvurunuz Kabul Edildi",
			"İşveren başvurunuzu kabul etti. İletişim bilgilerine ulaşabilirsiniz.",
			&event.JobID)
		return err

	case events.ApplicationsAutoRejected:
		for _, workerID := range event.RejectedWorkerIDs {
			_, err := d.notifs.Create(ctx, workerID, "application_rejected",
				"Başvurunuz Reddedildi",
				fmt.Sprintf("%s ilanı için başka bir usta seçildi", event.JobTitle),
				&event.JobID)
			if err != nil {
				return err
			}
		}
		return nil

	case events.JobStarted:
		if event.WorkerID == "" {
			return nil
		}
		_, err := d.notifs.Create(ctx, event.WorkerID, "job_started",
			"İş Başladı",
			fmt.Sprintf("%s işi başlatıldı", event.JobTitle),
			&event.JobID)
		return err

	case events.JobCompleted:
		if err := d.notifyParties(ctx, event, "job_completed",
			"İş Tamamlandı",
			fmt.Sprintf("%s işi tamamlandı. Değerlendirme yapabilirsiniz.", event.JobTitle)); err != nil {
			return err
		}
		d.refreshParties(ctx, event)
		return nil

	case events.JobCancelled:
		if err := d.notifyParties(ctx, event, "job_cancelled",
			"İş İptal Edildi",
			fmt.Sprintf("%s işi iptal edildi", event.JobTitle)); err != nil {
			return err
		}
		d.refreshParties(ctx, event)
		return nil
	}

	log.Printf("dispatcher: unknown event type %q dropped", event.Type)
	return nil
}

func (d *DispatcherService) notifyParties(ctx context.Context, event events.Event, notifType, title, message string) error {
	if _, err := d.notifs.Create(ctx, event.EmployerID, notifType, title, message, &event.JobID); err != nil {
		return err
	}

	if event.WorkerID != "" {
		if _, err := d.notifs.Create(ctx, event.WorkerID, notifType, title, message, &event.JobID); err != nil {
			return err
		}
	}

	return nil
}

// refreshParties recomputes both parties' derived counters. Failures
// are logged only; the aggregates heal on the next recompute.
func (d *DispatcherService) refreshParties(ctx context.Context, event events.Event) {
	if err := d.reputation.Recompute(ctx, event.EmployerID); err != nil {
		log.Printf("dispatcher: recompute for employer %s failed: %v", event.EmployerID, err)
	}

	if event.WorkerID != "" {
		if err := d.reputation.Recompute(ctx, event.WorkerID); err != nil {
			log.Printf("dispatcher: recompute for worker %s failed: %v", event.WorkerID, err)
		}
	}
}

func (d *DispatcherService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	return d.notifs.ListByUser(ctx, userID)
}

// MarkRead is idempotent; marking an already-read notification succeeds
// with no further effect.
func (d *DispatcherService) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := d.notifs.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return err
	}

	if notification.UserID != userID {
		return apperrors.ErrNotNotificationOwner
	}

	if notification.IsRead {
		return nil
	}

	return d.notifs.MarkRead(ctx, notificationID)
}
