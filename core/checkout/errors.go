package checkout

import "errors"

var (
	// ErrEmptyCart is returned when checkout starts with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingAddress is returned when no default shipping address is set.
	ErrMissingAddress = errors.New("no shipping address set")
	// ErrOrderValueExceeded is returned when the subtotal is over the
	// client-enforced ceiling.
	ErrOrderValueExceeded = errors.New("order value exceeds the allowed maximum")
	// ErrQuotePending is returned when confirmation is attempted while the
	// shipping fee is still unknown.
	ErrQuotePending = errors.New("shipping quote not yet available")
	// ErrInvalidState is returned when an operation does not apply to the
	// flow's current state.
	ErrInvalidState = errors.New("operation not allowed in current checkout state")
)
