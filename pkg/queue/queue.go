// Package queue implements a persistent task queue used to record analytics
// events off the request path. Events are enqueued durably and drained by a
// background worker so a slow or unavailable consumer never delays an API
// response.
package queue

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a queued event.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Event is a single unit of queued work. Payload holds the JSON-encoded
// handler input.
type Event struct {
	ID          uuid.UUID  `bson:"_id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Payload     []byte     `bson:"payload" json:"payload"`
	Status      Status     `bson:"status" json:"status"`
	Attempts    int8       `bson:"attempts" json:"attempts"`
	MaxAttempts int8       `bson:"max_attempts" json:"max_attempts"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	ScheduledAt time.Time  `bson:"scheduled_at" json:"scheduled_at"`
	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
	LastError   string     `bson:"last_error,omitempty" json:"last_error,omitempty"`
}

// NewEvent creates a pending event with a JSON-encoded payload.
func NewEvent(name string, payload any, maxAttempts int8) (Event, error) {
	if name == "" {
		return Event{}, ErrEmptyEventName
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, errors.Join(ErrInvalidPayload, err)
	}

	now := time.Now().UTC()
	return Event{
		ID:          uuid.New(),
		Name:        name,
		Payload:     raw,
		Status:      StatusPending,
		MaxAttempts: maxAttempts,
		CreatedAt:   now,
		ScheduledAt: now,
	}, nil
}
