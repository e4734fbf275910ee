// Package event provides a small in-process event bus used to express the
// client's reactive rules explicitly instead of hiding them in screen
// re-render cycles.
//
// Events are plain structs; their type name is the subscription key:
//
//	bus := event.NewBus()
//	bus.Subscribe(event.NewHandlerFunc(func(ctx context.Context, evt cart.CartChanged) error {
//		return coordinator.Recompute(ctx)
//	}))
//
//	_ = bus.Publish(ctx, cart.CartChanged{Subtotal: 150000})
//
// Delivery is synchronous and ordered, which makes the cart -> shipping
// dependency testable without a UI harness.
package event
