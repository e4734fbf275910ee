package shipping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowmart/storefront/core/address"
	"github.com/glowmart/storefront/pkg/async"
)

// Window is the estimated delivery interval.
type Window struct {
	From time.Time
	To   time.Time
}

// Quote is a derived (fee, lead time) pair for one destination and insured
// value. Quotes are ephemeral: they are recomputed on every relevant change
// and never cached across address or subtotal changes.
type Quote struct {
	Fee    int64
	Window Window
}

// FeeRequest carries the destination and insured value for a fee lookup.
type FeeRequest struct {
	DistrictID   int
	WardCode     string
	InsuredValue int64
}

// RateAPI is the shipping provider surface: one call for the fee, an
// independent one for the lead time.
type RateAPI interface {
	Fee(ctx context.Context, req FeeRequest) (int64, error)
	LeadTime(ctx context.Context, districtID int, wardCode string) (Window, error)
}

// ErrEstimateUnavailable is returned when the quote cannot be computed. A
// partial result is never exposed: a fee without a lead time (or the
// reverse) would make the checkout summary inconsistent.
var ErrEstimateUnavailable = errors.New("shipping estimate unavailable")

// Estimator derives shipping quotes. It is a pure function of its inputs
// from the caller's perspective; no state is kept between calls.
type Estimator struct {
	api RateAPI
}

// NewEstimator creates an estimator backed by the given provider.
func NewEstimator(api RateAPI) *Estimator {
	return &Estimator{api: api}
}

// Estimate computes the quote for delivering to addr with the given insured
// value. The fee and lead-time lookups run in parallel and must both
// succeed.
func (e *Estimator) Estimate(ctx context.Context, addr address.Address, insuredValue int64) (Quote, error) {
	feeReq := FeeRequest{
		DistrictID:   addr.DistrictID,
		WardCode:     addr.WardCode,
		InsuredValue: insuredValue,
	}

	feeF := async.Async(ctx, feeReq, e.api.Fee)
	winF := async.Async(ctx, addr, func(ctx context.Context, a address.Address) (Window, error) {
		return e.api.LeadTime(ctx, a.DistrictID, a.WardCode)
	})

	fee, feeErr := feeF.Await()
	win, winErr := winF.Await()
	if err := errors.Join(feeErr, winErr); err != nil {
		return Quote{}, fmt.Errorf("%w: %w", ErrEstimateUnavailable, err)
	}

	return Quote{Fee: fee, Window: win}, nil
}
