package checkout

import (
	"github.com/glowmart/storefront/core/address"
	"github.com/glowmart/storefront/core/cart"
	"github.com/glowmart/storefront/core/shipping"
	"github.com/glowmart/storefront/pkg/currency"
)

// pendingFee is shown while the shipping quote is unknown. A missing quote
// is never rendered as a zero fee.
const pendingFee = "—"

// Summary is what the user confirms before an order is placed. The address
// is held by value: a snapshot at validation time, independent of later
// edits.
type Summary struct {
	Subtotal int64
	Items    []cart.Line
	Address  address.Address
	Quote    *shipping.Quote // nil while the fee is unknown
}

// Total is subtotal plus shipping fee. ok is false while the fee is
// unknown and no total can be shown.
func (s Summary) Total() (int64, bool) {
	if s.Quote == nil {
		return 0, false
	}
	return s.Subtotal + s.Quote.Fee, true
}

// DisplaySubtotal renders the subtotal for the confirmation screen.
func (s Summary) DisplaySubtotal() string {
	return currency.VND(s.Subtotal)
}

// DisplayShippingFee renders the fee, or a pending marker while unknown.
func (s Summary) DisplayShippingFee() string {
	if s.Quote == nil {
		return pendingFee
	}
	return currency.VND(s.Quote.Fee)
}

// DisplayTotal renders the grand total, or a pending marker while the fee
// is unknown.
func (s Summary) DisplayTotal() string {
	total, ok := s.Total()
	if !ok {
		return pendingFee
	}
	return currency.VND(total)
}
