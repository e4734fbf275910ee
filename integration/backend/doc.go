// Package backend is the typed client for the storefront REST API. One
// Client owns the transport concerns (base URL, timeout, bearer token,
// request IDs, failure classification) and hands out per-domain services
// that satisfy the interfaces the core packages define.
//
// The client carries no business logic and never swallows errors. Every
// failure is classified into the remote taxonomy before it reaches a
// caller, and every 401 additionally fires the unauthorized hook so the
// session can invalidate itself no matter which endpoint tripped it.
package backend
