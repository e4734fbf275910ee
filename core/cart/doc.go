// Package cart keeps the client's cart consistent with the server's source
// of truth.
//
// The engine never mutates the snapshot optimistically: every mutation
// round-trips to the server and the returned snapshot replaces the local
// one wholesale. Overlapping mutations are ordered by issuance, so a slow
// earlier response cannot clobber the result of a faster later one.
//
// Decrementing a quantity-one line is a destructive action. The server's
// decrement endpoint would remove the line outright, so the engine
// intercepts that case and returns a Removal the caller must confirm or
// cancel before anything is sent.
package cart
