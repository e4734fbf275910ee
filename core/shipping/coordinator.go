package shipping

import (
	"context"
	"log/slog"
	"sync"

	"github.com/glowmart/storefront/core/address"
	"github.com/glowmart/storefront/core/cart"
	"github.com/glowmart/storefront/core/event"
	"github.com/glowmart/storefront/pkg/logger"
)

// AddressSource supplies the current default address, nil when none is set.
type AddressSource interface {
	Default(ctx context.Context) (*address.Address, error)
}

// Coordinator owns the current shipping quote and keeps it in step with the
// cart and the saved address. It recomputes only on CartChanged and
// AddressChanged events, never on unrelated state updates.
//
// Recomputes are generation-guarded: events arrive in applied order, but
// their estimates may finish out of order, so a result triggered before the
// latest event is dropped instead of overwriting the newer quote.
type Coordinator struct {
	mu       sync.RWMutex
	quote    *Quote // nil while unknown or pending
	subtotal int64
	gen      uint64 // bumped on every trigger
	quoteGen uint64 // generation the current quote belongs to

	est   *Estimator
	addrs AddressSource
	log   *slog.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.log = log }
}

// NewCoordinator creates a coordinator. Call Bind to attach it to the bus.
func NewCoordinator(est *Estimator, addrs AddressSource, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		est:   est,
		addrs: addrs,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("shipping"))
	return c
}

// Bind subscribes the coordinator to cart and address changes.
func (c *Coordinator) Bind(bus *event.Bus) {
	bus.Subscribe(
		event.NewHandlerFunc(c.onCartChanged),
		event.NewHandlerFunc(c.onAddressChanged),
	)
}

// Quote returns the current quote. ok is false while the quote is unknown:
// no address is set, the cart is empty, or the last computation failed. An
// unknown fee is explicitly not zero.
func (c *Coordinator) Quote() (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.quote == nil {
		return Quote{}, false
	}
	return *c.quote, true
}

func (c *Coordinator) onCartChanged(ctx context.Context, evt cart.CartChanged) error {
	c.mu.Lock()
	c.subtotal = evt.Subtotal
	c.gen++
	gen := c.gen
	subtotal := c.subtotal
	c.mu.Unlock()
	return c.recompute(ctx, gen, subtotal)
}

func (c *Coordinator) onAddressChanged(ctx context.Context, _ address.AddressChanged) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	subtotal := c.subtotal
	c.mu.Unlock()
	return c.recompute(ctx, gen, subtotal)
}

// recompute refreshes the quote for the (address, subtotal) pair captured
// at trigger time. Any failure resets the quote to unknown rather than
// leaving a value that no longer matches the inputs.
func (c *Coordinator) recompute(ctx context.Context, gen uint64, subtotal int64) error {
	if subtotal == 0 {
		c.setQuote(nil, gen)
		return nil
	}

	addr, err := c.addrs.Default(ctx)
	if err != nil {
		c.setQuote(nil, gen)
		c.log.WarnContext(ctx, "address lookup failed, shipping unknown", logger.Error(err))
		return err
	}
	if addr == nil {
		// No destination yet: the fee is unknown, not zero, until one is set.
		c.setQuote(nil, gen)
		return nil
	}

	q, err := c.est.Estimate(ctx, *addr, subtotal)
	if err != nil {
		c.setQuote(nil, gen)
		c.log.WarnContext(ctx, "shipping estimate failed", logger.Error(err))
		return err
	}
	c.setQuote(&q, gen)
	return nil
}

// setQuote installs a recompute result unless a later-triggered recompute
// has already resolved; slow estimates for superseded cart or address state
// are dropped, mirroring the cart engine's stale-response discard.
func (c *Coordinator) setQuote(q *Quote, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.quoteGen {
		c.log.Debug("discarded stale shipping estimate",
			slog.Uint64("gen", gen), slog.Uint64("latest", c.quoteGen))
		return
	}
	c.quoteGen = gen
	c.quote = q
}
