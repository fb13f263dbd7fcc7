package queue

import (
	"context"
	"encoding/json"
	"errors"
)

// Handler processes one event payload.
type Handler interface {
	Name() string
	Handle(ctx context.Context, payload []byte) error
}

type handlerFunc struct {
	name string
	fn   func(ctx context.Context, payload []byte) error
}

func (h handlerFunc) Name() string { return h.name }

func (h handlerFunc) Handle(ctx context.Context, payload []byte) error {
	return h.fn(ctx, payload)
}

// NewHandler adapts a typed function into a Handler, decoding the event
// payload into T before invoking fn.
func NewHandler[T any](name string, fn func(ctx context.Context, payload T) error) Handler {
	return handlerFunc{
		name: name,
		fn: func(ctx context.Context, raw []byte) error {
			var payload T
			if err := json.Unmarshal(raw, &payload); err != nil {
				return errors.Join(ErrInvalidPayload, err)
			}
			return fn(ctx, payload)
		},
	}
}
