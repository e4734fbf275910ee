package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/glowmart/storefront/core/address"
	"github.com/glowmart/storefront/core/cart"
	"github.com/glowmart/storefront/core/order"
	"github.com/glowmart/storefront/core/shipping"
	"github.com/glowmart/storefront/pkg/logger"
)

// OrderValueCeiling is the maximum subtotal accepted for a single order.
// Enforced client-side before submission to avoid a round-trip rejection.
const OrderValueCeiling int64 = 5_000_000

// State is the checkout flow's position.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateValidationFailed
	StateAwaitingConfirmation
	StateSubmitting
)

// String returns the state's name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateValidationFailed:
		return "validation_failed"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// CartSource is the cart surface the orchestrator reads and resyncs.
type CartSource interface {
	Snapshot() cart.Cart
	Refresh(ctx context.Context) (cart.Cart, error)
}

// AddressSource supplies the current default address, nil when none is set.
type AddressSource interface {
	Default(ctx context.Context) (*address.Address, error)
}

// QuoteSource supplies the current shipping quote, ok=false while unknown.
type QuoteSource interface {
	Quote() (shipping.Quote, bool)
}

// OrderAPI creates orders on the backend.
type OrderAPI interface {
	Create(ctx context.Context, req CreateOrderRequest) (order.Order, error)
}

// CreateOrderRequest is the order-creation payload: a value snapshot of the
// destination plus the fee and insured value agreed at confirmation time.
type CreateOrderRequest struct {
	ShippingInfo order.ShippingInfo
	InsuredValue int64
	ShippingFee  int64
}

// Orchestrator sequences the checkout flow:
//
//	Idle -> Validating -> (ValidationFailed | AwaitingConfirmation)
//	     -> (Cancel -> Idle | Submitting)
//	     -> (Failed -> AwaitingConfirmation | Placed -> Idle)
//
// Placed is terminal for the invocation; the next checkout starts a fresh
// cycle from Idle.
type Orchestrator struct {
	mu      sync.Mutex
	state   State
	pending *Summary

	carts  CartSource
	addrs  AddressSource
	quotes QuoteSource
	api    OrderAPI
	log    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// NewOrchestrator creates a checkout orchestrator in the Idle state.
func NewOrchestrator(carts CartSource, addrs AddressSource, quotes QuoteSource, api OrderAPI, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		carts:  carts,
		addrs:  addrs,
		quotes: quotes,
		api:    api,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.With(logger.Component("checkout"))
	return o
}

// State returns the flow's current position.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Validate checks the checkout preconditions and, on success, captures the
// summary the user must confirm. The subtotal and ceiling checks are purely
// local; the address is read from its store's cache where possible.
func (o *Orchestrator) Validate(ctx context.Context) (Summary, error) {
	o.mu.Lock()
	if o.state != StateIdle && o.state != StateValidationFailed {
		state := o.state
		o.mu.Unlock()
		return Summary{}, fmt.Errorf("%w: validate from %s", ErrInvalidState, state)
	}
	o.state = StateValidating
	o.mu.Unlock()

	snapshot := o.carts.Snapshot()
	if snapshot.IsEmpty() {
		return o.failValidation(ErrEmptyCart)
	}

	subtotal := snapshot.Subtotal()
	if subtotal > OrderValueCeiling {
		return o.failValidation(fmt.Errorf("%w: subtotal %d over ceiling %d", ErrOrderValueExceeded, subtotal, OrderValueCeiling))
	}

	addr, err := o.addrs.Default(ctx)
	if err != nil {
		return o.failValidation(fmt.Errorf("checking address: %w", err))
	}
	if addr == nil {
		return o.failValidation(ErrMissingAddress)
	}

	summary := Summary{
		Subtotal: subtotal,
		Address:  *addr, // value copy, detached from later edits
		Items:    snapshot.Items,
	}
	if quote, ok := o.quotes.Quote(); ok {
		q := quote
		summary.Quote = &q
	}

	o.mu.Lock()
	o.state = StateAwaitingConfirmation
	o.pending = &summary
	o.mu.Unlock()
	return summary, nil
}

// Confirm submits the order the user has confirmed. On success the cart is
// resynced and the flow returns to Idle; on failure the flow returns to
// AwaitingConfirmation with the cart untouched.
func (o *Orchestrator) Confirm(ctx context.Context) (order.Order, error) {
	o.mu.Lock()
	if o.state != StateAwaitingConfirmation || o.pending == nil {
		state := o.state
		o.mu.Unlock()
		return order.Order{}, fmt.Errorf("%w: confirm from %s", ErrInvalidState, state)
	}
	summary := *o.pending
	if summary.Quote == nil {
		o.mu.Unlock()
		return order.Order{}, ErrQuotePending
	}
	o.state = StateSubmitting
	o.mu.Unlock()

	req := CreateOrderRequest{
		ShippingInfo: shippingSnapshot(summary.Address),
		InsuredValue: summary.Subtotal,
		ShippingFee:  summary.Quote.Fee,
	}

	placed, err := o.api.Create(ctx, req)
	if err != nil {
		o.mu.Lock()
		o.state = StateAwaitingConfirmation
		o.mu.Unlock()
		return order.Order{}, fmt.Errorf("placing order: %w", err)
	}

	o.mu.Lock()
	o.state = StateIdle
	o.pending = nil
	o.mu.Unlock()

	o.log.InfoContext(ctx, "order placed", logger.OrderCode(placed.Code))

	// Resync rather than clear locally; the server decides what remains.
	if _, err := o.carts.Refresh(ctx); err != nil {
		o.log.WarnContext(ctx, "cart resync after order failed", logger.Error(err))
	}
	return placed, nil
}

// Cancel abandons the current cycle and returns to Idle. Safe to call from
// any non-submitting state.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return
	}
	o.state = StateIdle
	o.pending = nil
}

func (o *Orchestrator) failValidation(err error) (Summary, error) {
	o.mu.Lock()
	o.state = StateValidationFailed
	o.pending = nil
	o.mu.Unlock()
	return Summary{}, err
}

// shippingSnapshot copies the address fields an order needs. The order
// keeps these values even if the address is edited afterwards.
func shippingSnapshot(a address.Address) order.ShippingInfo {
	return order.ShippingInfo{
		FullName:     a.FullName,
		Phone:        a.Phone,
		Detail:       a.Detail,
		ProvinceName: a.ProvinceName,
		DistrictName: a.DistrictName,
		WardName:     a.WardName,
	}
}
