package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/core/event"
)

type priceChanged struct {
	Amount int64
}

type unrelated struct{}

func TestBus_Publish(t *testing.T) {
	t.Parallel()

	t.Run("delivers to matching handler", func(t *testing.T) {
		t.Parallel()

		bus := event.NewBus()
		var got int64
		bus.Subscribe(event.NewHandlerFunc(func(_ context.Context, evt priceChanged) error {
			got = evt.Amount
			return nil
		}))

		require.NoError(t, bus.Publish(context.Background(), priceChanged{Amount: 42}))
		assert.Equal(t, int64(42), got)
	})

	t.Run("does not deliver to other event types", func(t *testing.T) {
		t.Parallel()

		bus := event.NewBus()
		called := false
		bus.Subscribe(event.NewHandlerFunc(func(_ context.Context, _ priceChanged) error {
			called = true
			return nil
		}))

		require.NoError(t, bus.Publish(context.Background(), unrelated{}))
		assert.False(t, called)
	})

	t.Run("runs handlers in registration order and aggregates errors", func(t *testing.T) {
		t.Parallel()

		bus := event.NewBus()
		var order []string
		firstErr := errors.New("first failed")
		bus.Subscribe(
			event.NewHandlerFunc(func(_ context.Context, _ priceChanged) error {
				order = append(order, "a")
				return firstErr
			}),
			event.NewHandlerFunc(func(_ context.Context, _ priceChanged) error {
				order = append(order, "b")
				return nil
			}),
		)

		err := bus.Publish(context.Background(), priceChanged{})
		assert.ErrorIs(t, err, firstErr)
		assert.Equal(t, []string{"a", "b"}, order)
	})

	t.Run("recovers handler panic", func(t *testing.T) {
		t.Parallel()

		bus := event.NewBus()
		bus.Subscribe(event.NewHandlerFunc(func(_ context.Context, _ priceChanged) error {
			panic("boom")
		}))

		err := bus.Publish(context.Background(), priceChanged{})
		assert.ErrorIs(t, err, event.ErrHandlerPanic)
	})

	t.Run("rejects canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bus := event.NewBus()
		err := bus.Publish(ctx, priceChanged{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
