package event

import (
	"context"
	"fmt"
)

// HandlerFunc is a type-safe function signature for processing events of type T.
type HandlerFunc[T any] func(context.Context, T) error

// Handler processes events. Implementations are registered with a Bus to
// handle one event type.
type Handler interface {
	// EventName returns the event name this handler processes.
	EventName() string

	// Handle executes the handler with the given event payload.
	Handle(ctx context.Context, payload any) error
}

// NewHandlerFunc creates a type-safe handler from a function. The event name
// is derived from the type parameter, so a handler for cart.CartChanged is
// invoked for every published CartChanged value.
func NewHandlerFunc[T any](fn HandlerFunc[T]) Handler {
	var zero T
	return &handlerFunc[T]{name: nameOf(zero), fn: fn}
}

type handlerFunc[T any] struct {
	name string
	fn   HandlerFunc[T]
}

func (h *handlerFunc[T]) EventName() string { return h.name }

func (h *handlerFunc[T]) Handle(ctx context.Context, payload any) error {
	typed, ok := payload.(T)
	if !ok {
		return fmt.Errorf("%w: got %T for %s", ErrPayloadMismatch, payload, h.name)
	}
	return h.fn(ctx, typed)
}
