package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/glowmart/storefront/pkg/logger"
)

// Bus dispatches published events synchronously to registered handlers in
// the caller's goroutine. Synchronous delivery keeps the reactive rules of
// this client deterministic: when a cart mutation returns, every dependent
// recomputation has already run.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used for handler failures.
// If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) BusOption {
	return func(b *Bus) {
		b.logger = log
	}
}

// NewBus creates an event bus with no registered handlers.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		handlers: make(map[string][]Handler),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for its event name. Multiple handlers may
// subscribe to the same event; they run in registration order.
func (b *Bus) Subscribe(handlers ...Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range handlers {
		b.handlers[h.EventName()] = append(b.handlers[h.EventName()], h)
	}
}

// Publish wraps payload in an Event and delivers it to all handlers
// registered for its type name. Handler errors are aggregated via
// errors.Join; a panicking handler is recovered and reported as an error so
// one subscriber cannot take down the publisher.
func (b *Bus) Publish(ctx context.Context, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	evt := newEvent(payload)

	b.mu.RLock()
	handlers := b.handlers[evt.Name]
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := safeHandle(ctx, h, evt.Payload); err != nil {
			b.logger.ErrorContext(ctx, "event handler failed",
				logger.Event(evt.Name), logger.Error(err))
			errs = append(errs, fmt.Errorf("handler for %s: %w", evt.Name, err))
		}
	}
	return errors.Join(errs...)
}

func safeHandle(ctx context.Context, h Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return h.Handle(ctx, payload)
}
