package cart

import "errors"

var (
	// ErrLineNotFound is returned when a mutation targets a product that is
	// not in the cart.
	ErrLineNotFound = errors.New("product is not in the cart")
	// ErrNoPendingRemoval is returned when a removal is confirmed or
	// canceled without a prior decrement request on a quantity-one line.
	ErrNoPendingRemoval = errors.New("no removal awaiting confirmation")
)
