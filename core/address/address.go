// Package address manages the account's shipping address. The system is
// deliberately single-address: exactly zero or one address exists per
// account, and saving overwrites rather than appends.
package address

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/glowmart/storefront/pkg/logger"
)

// Address is the delivery destination, carrying both the provider location
// codes used for rate calculation and the display names.
type Address struct {
	ID           string
	FullName     string
	Phone        string
	Detail       string // street-level address line
	ProvinceID   int
	ProvinceName string
	DistrictID   int
	DistrictName string
	WardCode     string
	WardName     string
	IsDefault    bool
}

// AddressChanged is published whenever the saved address changes, so
// shipping quotes tied to the old destination are recomputed.
type AddressChanged struct {
	DistrictID int
	WardCode   string
}

// ErrIncomplete is returned when a save is attempted without the fields
// required to route a delivery.
var ErrIncomplete = errors.New("address is missing required fields")

// API is the remote address surface. Get returns nil when the account has
// no address yet.
type API interface {
	Get(ctx context.Context) (*Address, error)
	Save(ctx context.Context, addr Address) (Address, error)
}

// Publisher receives domain events emitted by the store.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// Store caches the account's single address and publishes change events.
type Store struct {
	mu     sync.RWMutex
	cached *Address
	loaded bool

	api    API
	events Publisher
	log    *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore creates an address store.
func NewStore(api API, events Publisher, opts ...StoreOption) *Store {
	s := &Store{
		api:    api,
		events: events,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("address"))
	return s
}

// Default returns the account's address, fetching it on first use. Returns
// nil with no error when the account has none; shipping is then unknown,
// not free.
func (s *Store) Default(ctx context.Context) (*Address, error) {
	s.mu.RLock()
	if s.loaded {
		addr := cloneAddr(s.cached)
		s.mu.RUnlock()
		return addr, nil
	}
	s.mu.RUnlock()

	addr, err := s.api.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading shipping address: %w", err)
	}

	s.mu.Lock()
	s.cached = cloneAddr(addr)
	s.loaded = true
	s.mu.Unlock()
	return addr, nil
}

// Save validates and stores the address, overwriting any existing one, and
// publishes AddressChanged on success.
func (s *Store) Save(ctx context.Context, addr Address) (Address, error) {
	if addr.FullName == "" || addr.Phone == "" || addr.Detail == "" ||
		addr.DistrictID == 0 || addr.WardCode == "" {
		return Address{}, ErrIncomplete
	}
	addr.IsDefault = true

	saved, err := s.api.Save(ctx, addr)
	if err != nil {
		return Address{}, fmt.Errorf("saving shipping address: %w", err)
	}

	s.mu.Lock()
	s.cached = cloneAddr(&saved)
	s.loaded = true
	s.mu.Unlock()

	if err := s.events.Publish(ctx, AddressChanged{DistrictID: saved.DistrictID, WardCode: saved.WardCode}); err != nil {
		s.log.ErrorContext(ctx, "address change notification failed", logger.Error(err))
	}
	return saved, nil
}

// Invalidate drops the cached address so the next read refetches. Called on
// logout; another account's address must never leak across sessions.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.loaded = false
	s.mu.Unlock()
}

func cloneAddr(a *Address) *Address {
	if a == nil {
		return nil
	}
	out := *a
	return &out
}
