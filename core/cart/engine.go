package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/glowmart/storefront/pkg/logger"
)

// API is the remote cart surface. Every mutation returns the authoritative
// post-mutation snapshot.
type API interface {
	Get(ctx context.Context) (Cart, error)
	Add(ctx context.Context, productID string) (Cart, error)
	Decrement(ctx context.Context, productID string) (Cart, error)
	Remove(ctx context.Context, productID string) (Cart, error)
}

// Publisher receives domain events emitted by the engine.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// CartChanged is published after every applied mutation so dependents
// (shipping recomputation, badges) react without watching the engine.
type CartChanged struct {
	Subtotal int64
	Lines    int
}

// Engine maintains the client's cart snapshot against the server's source
// of truth. Snapshots are replaced wholesale from mutation responses, never
// patched in place, and responses are applied in request-issuance order: a
// late response to an earlier request never overwrites the result of a
// newer one.
type Engine struct {
	mu         sync.Mutex
	cart       Cart
	nextSeq    uint64
	appliedSeq uint64
	pending    map[string]struct{} // productIDs with a removal awaiting confirmation

	api    API
	events Publisher
	log    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates a cart engine. The snapshot starts empty; call Refresh
// to load the server's view.
func NewEngine(api API, events Publisher, opts ...EngineOption) *Engine {
	e := &Engine{
		api:     api,
		events:  events,
		pending: make(map[string]struct{}),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(logger.Component("cart"))
	return e
}

// Snapshot returns a copy of the current cart.
func (e *Engine) Snapshot() Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.clone()
}

// Refresh refetches the authoritative cart. Used at screen entry, on
// pull-to-refresh, and after checkout completion.
func (e *Engine) Refresh(ctx context.Context) (Cart, error) {
	return e.mutate(ctx, "refresh", "", e.api.Get)
}

// Add adds one unit of the product, creating the line if absent. The same
// server operation backs both add-to-cart and quantity increment.
func (e *Engine) Add(ctx context.Context, productID string) (Cart, error) {
	return e.mutate(ctx, "add", productID, func(ctx context.Context) (Cart, error) {
		return e.api.Add(ctx, productID)
	})
}

// Increment raises the line's quantity by one.
func (e *Engine) Increment(ctx context.Context, productID string) (Cart, error) {
	return e.Add(ctx, productID)
}

// Removal describes a destructive decrement awaiting the user's explicit
// decision.
type Removal struct {
	ProductID   string
	ProductName string
}

// RequestDecrement lowers the line's quantity by one. When the quantity is
// exactly one the decrement would silently remove the line server-side, so
// no call is made; instead a Removal is returned and held until the caller
// resolves it with ConfirmRemoval or CancelRemoval.
func (e *Engine) RequestDecrement(ctx context.Context, productID, productName string) (*Removal, Cart, error) {
	e.mu.Lock()
	qty := e.cart.Quantity(productID)
	if qty == 0 {
		snapshot := e.cart.clone()
		e.mu.Unlock()
		return nil, snapshot, fmt.Errorf("%w: %s", ErrLineNotFound, productID)
	}
	if qty == 1 {
		e.pending[productID] = struct{}{}
		snapshot := e.cart.clone()
		e.mu.Unlock()
		return &Removal{ProductID: productID, ProductName: productName}, snapshot, nil
	}
	e.mu.Unlock()

	cart, err := e.mutate(ctx, "decrement", productID, func(ctx context.Context) (Cart, error) {
		return e.api.Decrement(ctx, productID)
	})
	return nil, cart, err
}

// ConfirmRemoval executes a removal previously returned by RequestDecrement.
// The user approved removing the last unit, so the quantity is re-checked
// here: if the line grew while the prompt was open, only one unit comes
// off; if the line is already gone, there is nothing left to remove.
func (e *Engine) ConfirmRemoval(ctx context.Context, productID string) (Cart, error) {
	e.mu.Lock()
	_, ok := e.pending[productID]
	if ok {
		delete(e.pending, productID)
	}
	qty := e.cart.Quantity(productID)
	snapshot := e.cart.clone()
	e.mu.Unlock()

	if !ok {
		return snapshot, ErrNoPendingRemoval
	}
	if qty == 0 {
		return snapshot, fmt.Errorf("%w: %s", ErrLineNotFound, productID)
	}
	if qty > 1 {
		return e.mutate(ctx, "decrement", productID, func(ctx context.Context) (Cart, error) {
			return e.api.Decrement(ctx, productID)
		})
	}
	return e.RemoveLine(ctx, productID)
}

// CancelRemoval abandons a pending removal, leaving the cart untouched.
func (e *Engine) CancelRemoval(productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.pending[productID]; !ok {
		return ErrNoPendingRemoval
	}
	delete(e.pending, productID)
	return nil
}

// RemoveLine removes the product's line unconditionally.
func (e *Engine) RemoveLine(ctx context.Context, productID string) (Cart, error) {
	return e.mutate(ctx, "remove", productID, func(ctx context.Context) (Cart, error) {
		return e.api.Remove(ctx, productID)
	})
}

// mutate issues one remote mutation and applies its snapshot unless a
// later-issued mutation has already applied. On failure the last-known-good
// snapshot is returned alongside the error; local state is never touched.
func (e *Engine) mutate(ctx context.Context, op, productID string, call func(context.Context) (Cart, error)) (Cart, error) {
	e.mu.Lock()
	e.nextSeq++
	seq := e.nextSeq
	e.mu.Unlock()

	fresh, err := call(ctx)
	if err != nil {
		e.log.WarnContext(ctx, "cart mutation failed",
			slog.String("op", op), logger.ProductID(productID), logger.Error(err))
		return e.Snapshot(), err
	}

	fresh = normalize(fresh)

	e.mu.Lock()
	if seq <= e.appliedSeq {
		// A newer mutation's response already landed; this one is stale.
		snapshot := e.cart.clone()
		e.mu.Unlock()
		e.log.DebugContext(ctx, "discarded stale cart response",
			slog.String("op", op), slog.Uint64("seq", seq))
		return snapshot, nil
	}
	e.appliedSeq = seq
	e.cart = fresh
	snapshot := e.cart.clone()
	e.mu.Unlock()

	if err := e.events.Publish(ctx, CartChanged{Subtotal: snapshot.Subtotal(), Lines: len(snapshot.Items)}); err != nil {
		e.log.ErrorContext(ctx, "cart change notification failed", logger.Error(err))
	}
	return snapshot, nil
}
