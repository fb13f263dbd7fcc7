package queue

import (
	"context"
	"errors"
)

// EnqueuerRepository is the storage contract for writing events.
type EnqueuerRepository interface {
	Insert(ctx context.Context, event Event) error
}

// Enqueuer writes events to durable storage for later processing.
type Enqueuer struct {
	repo        EnqueuerRepository
	maxAttempts int8
}

// EnqueuerOption configures an Enqueuer.
type EnqueuerOption func(*Enqueuer)

// WithMaxAttempts sets how many times a failing event is retried before it
// is marked failed.
func WithMaxAttempts(n int8) EnqueuerOption {
	return func(e *Enqueuer) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// NewEnqueuer creates an Enqueuer with a default of 3 attempts per event.
func NewEnqueuer(repo EnqueuerRepository, opts ...EnqueuerOption) *Enqueuer {
	e := &Enqueuer{repo: repo, maxAttempts: 3}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enqueue persists a named event with a JSON-encoded payload.
func (e *Enqueuer) Enqueue(ctx context.Context, name string, payload any) error {
	event, err := NewEvent(name, payload, e.maxAttempts)
	if err != nil {
		return err
	}
	if err := e.repo.Insert(ctx, event); err != nil {
		return errors.Join(ErrFailedToEnqueue, err)
	}
	return nil
}
