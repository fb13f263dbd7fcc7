package queue

import "errors"

var (
	ErrEmptyEventName    = errors.New("event name must not be empty")
	ErrInvalidPayload    = errors.New("failed to encode event payload")
	ErrNoPendingEvents   = errors.New("no pending events")
	ErrUnknownEventName  = errors.New("no handler registered for event name")
	ErrDuplicateHandler  = errors.New("handler already registered for event name")
	ErrFailedToEnqueue   = errors.New("failed to enqueue event")
	ErrWorkerAlreadyRuns = errors.New("worker already running")
)
