package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glowmart/storefront/pkg/logger"
)

// ErrNotCancelable is returned when cancellation is requested for an order
// the server has already started processing.
var ErrNotCancelable = errors.New("order can no longer be canceled")

// API is the remote order surface for reads and cancellation. Creation
// belongs to the checkout orchestrator.
type API interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, code string) (Order, error)
	Cancel(ctx context.Context, code string) (Order, error)
}

// Service wraps the order API with the client-side cancellation rule.
type Service struct {
	api API
	log *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService creates an order service.
func NewService(api API, opts ...ServiceOption) *Service {
	s := &Service{api: api, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("order"))
	return s
}

// List returns the account's orders, newest first per the server's ordering.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.api.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// Get returns one order by its human-facing code.
func (s *Service) Get(ctx context.Context, code string) (Order, error) {
	o, err := s.api.Get(ctx, code)
	if err != nil {
		return Order{}, fmt.Errorf("loading order %s: %w", code, err)
	}
	return o, nil
}

// Cancel requests a pending -> canceled transition. The pending check is
// enforced locally to avoid a round-trip the server would reject anyway.
func (s *Service) Cancel(ctx context.Context, code string) (Order, error) {
	current, err := s.api.Get(ctx, code)
	if err != nil {
		return Order{}, fmt.Errorf("loading order %s: %w", code, err)
	}
	if !current.CanCancel() {
		return current, fmt.Errorf("%w: status is %s", ErrNotCancelable, current.Status)
	}

	canceled, err := s.api.Cancel(ctx, code)
	if err != nil {
		return current, fmt.Errorf("canceling order %s: %w", code, err)
	}
	s.log.InfoContext(ctx, "order canceled", logger.OrderCode(code))
	return canceled, nil
}
