// Package shipping derives delivery quotes from the saved address and the
// cart's insured value.
//
// A quote is the pair (fee, lead-time window). The two provider lookups
// behind it are independent remote calls that must both succeed; a partial
// result is treated as total failure so the checkout summary never shows a
// fee without a delivery window. While no quote can be computed the state
// is explicitly "unknown", never a zero fee.
package shipping
