package event

import "errors"

var (
	// ErrPayloadMismatch is returned when a published payload cannot be
	// delivered to a handler registered for its name.
	ErrPayloadMismatch = errors.New("event payload type mismatch")
	// ErrHandlerPanic wraps a recovered panic from a handler.
	ErrHandlerPanic = errors.New("event handler panicked")
)
