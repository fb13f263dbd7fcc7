package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// WorkerRepository is the storage contract for draining events.
type WorkerRepository interface {
	// ClaimPending atomically moves the oldest pending event due for
	// processing into the processing state and returns it. Returns
	// ErrNoPendingEvents when the queue is drained.
	ClaimPending(ctx context.Context, now time.Time) (Event, error)

	// MarkCompleted records a successful run.
	MarkCompleted(ctx context.Context, event Event) error

	// MarkRetry reschedules a failed event for another attempt.
	MarkRetry(ctx context.Context, event Event, runAt time.Time, lastError string) error

	// MarkFailed records a terminally failed event.
	MarkFailed(ctx context.Context, event Event, lastError string) error
}

// Worker drains queued events, dispatching each to its registered handler
// with bounded concurrency.
type Worker struct {
	repo     WorkerRepository
	log      *slog.Logger
	handlers map[string]Handler

	interval    time.Duration
	concurrency int
	retryDelay  time.Duration

	running atomic.Bool
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithPollInterval sets how long the worker sleeps when the queue is empty.
func WithPollInterval(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithConcurrency bounds how many events are processed simultaneously.
func WithConcurrency(n int) WorkerOption {
	return func(w *Worker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// WithRetryDelay sets the delay before a failed event is retried.
func WithRetryDelay(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.retryDelay = d
		}
	}
}

// NewWorker creates a Worker with the given handlers. Registering two
// handlers under the same name is a configuration mistake and errors out.
func NewWorker(repo WorkerRepository, log *slog.Logger, handlers []Handler, opts ...WorkerOption) (*Worker, error) {
	w := &Worker{
		repo:        repo,
		log:         log,
		handlers:    make(map[string]Handler, len(handlers)),
		interval:    time.Second,
		concurrency: 4,
		retryDelay:  30 * time.Second,
	}
	for _, h := range handlers {
		if _, ok := w.handlers[h.Name()]; ok {
			return nil, ErrDuplicateHandler
		}
		w.handlers[h.Name()] = h
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run drains the queue until ctx is canceled. It blocks, so callers run it
// in an errgroup or goroutine alongside the HTTP server.
func (w *Worker) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrWorkerAlreadyRuns
	}
	defer w.running.Store(false)

	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		event, err := w.repo.ClaimPending(ctx, time.Now().UTC())
		if err != nil {
			if !errors.Is(err, ErrNoPendingEvents) {
				w.log.ErrorContext(ctx, "failed to claim pending event", slog.Any("error", err))
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.interval):
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			w.process(ctx, event)
		}()
	}
}

func (w *Worker) process(ctx context.Context, event Event) {
	handler, ok := w.handlers[event.Name]
	if !ok {
		w.log.ErrorContext(ctx, "unknown event name",
			slog.String("event", event.Name),
			slog.String("event_id", event.ID.String()))
		if err := w.repo.MarkFailed(ctx, event, ErrUnknownEventName.Error()); err != nil {
			w.log.ErrorContext(ctx, "failed to mark event failed", slog.Any("error", err))
		}
		return
	}

	event.Attempts++
	if err := handler.Handle(ctx, event.Payload); err != nil {
		w.log.WarnContext(ctx, "event handler failed",
			slog.String("event", event.Name),
			slog.String("event_id", event.ID.String()),
			slog.Int("attempt", int(event.Attempts)),
			slog.Any("error", err))

		if event.Attempts >= event.MaxAttempts {
			if err := w.repo.MarkFailed(ctx, event, err.Error()); err != nil {
				w.log.ErrorContext(ctx, "failed to mark event failed", slog.Any("error", err))
			}
			return
		}
		if err := w.repo.MarkRetry(ctx, event, time.Now().UTC().Add(w.retryDelay), err.Error()); err != nil {
			w.log.ErrorContext(ctx, "failed to reschedule event", slog.Any("error", err))
		}
		return
	}

	if err := w.repo.MarkCompleted(ctx, event); err != nil {
		w.log.ErrorContext(ctx, "failed to mark event completed", slog.Any("error", err))
	}
}
