package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-process event store implementing both the
// enqueuer and worker contracts. Used in tests and local development.
type MemoryRepository struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryRepository creates an empty in-memory event store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, event Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) ClaimPending(_ context.Context, now time.Time) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		e := &r.events[i]
		if e.Status == StatusPending && !e.ScheduledAt.After(now) {
			e.Status = StatusProcessing
			return *e, nil
		}
	}
	return Event{}, ErrNoPendingEvents
}

func (r *MemoryRepository) MarkCompleted(_ context.Context, event Event) error {
	r.update(event.ID.String(), func(e *Event) {
		now := time.Now().UTC()
		e.Status = StatusCompleted
		e.Attempts = event.Attempts
		e.ProcessedAt = &now
	})
	return nil
}

func (r *MemoryRepository) MarkRetry(_ context.Context, event Event, runAt time.Time, lastError string) error {
	r.update(event.ID.String(), func(e *Event) {
		e.Status = StatusPending
		e.Attempts = event.Attempts
		e.ScheduledAt = runAt
		e.LastError = lastError
	})
	return nil
}

func (r *MemoryRepository) MarkFailed(_ context.Context, event Event, lastError string) error {
	r.update(event.ID.String(), func(e *Event) {
		now := time.Now().UTC()
		e.Status = StatusFailed
		e.Attempts = event.Attempts
		e.ProcessedAt = &now
		e.LastError = lastError
	})
	return nil
}

// Snapshot returns a copy of all stored events, oldest first.
func (r *MemoryRepository) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *MemoryRepository) update(id string, fn func(*Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID.String() == id {
			fn(&r.events[i])
			return
		}
	}
}
