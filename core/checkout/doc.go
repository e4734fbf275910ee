// Package checkout sequences order placement: validate preconditions,
// capture a summary, require explicit confirmation, submit, resync the
// cart. Validation failures never reach the network, and a failed submit
// leaves the cart and the confirmation summary intact for a manual retry.
package checkout
