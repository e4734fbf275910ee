package async

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
var ErrTimeout = errors.New("async: await timed out")

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	value U
	err   error
	done  chan struct{}
}

// Await blocks until the computation completes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for the computation to complete or the timeout to
// elapse, whichever comes first. On timeout the underlying goroutine keeps
// running; only the wait is abandoned.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn in its own goroutine and returns a Future for its result.
// The parameter is captured by value at call time so concurrent mutation of
// the caller's variables cannot race with the computation.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents doing work when the context is pre-canceled.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = fn(ctx, param)
	}()

	return f
}
