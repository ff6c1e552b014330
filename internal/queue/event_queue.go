package queue

import (
	"context"
	"errors"
)

// EventQueue is the durable buffer between the lifecycle service and
// the notification dispatcher. Publishing must never fail the
// transition that produced the event; consumption is at-least-once,
// with Requeue putting a payload back after a handling failure.
type EventQueue interface {
	Publish(ctx context.Context, payload string) error

	Pop(ctx context.Context) (string, error)

	Requeue(ctx context.Context, payload string) error
}

var ErrQueueEmpty = errors.New("event queue is empty")
