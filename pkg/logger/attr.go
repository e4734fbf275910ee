package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit nil checks.

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component tags log records with the subsystem that produced them,
// e.g. "session", "cart", "checkout".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Endpoint identifies a remote call by method and path.
func Endpoint(method, path string) slog.Attr {
	return slog.Attr{Key: "endpoint", Value: slog.GroupValue(
		slog.String("method", method),
		slog.String("path", path),
	)}
}

// Duration creates an attribute for a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Event tags log records with the domain event name being handled.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// ProductID tags log records with the product a cart mutation targets.
func ProductID(id string) slog.Attr {
	return slog.String("product_id", id)
}

// OrderCode tags log records with a human-facing order identifier.
func OrderCode(code string) slog.Attr {
	return slog.String("order_code", code)
}
