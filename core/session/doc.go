// Package session owns the client's auth state: the bearer token, the
// cached user profile, and the staleness bookkeeping that decides when the
// profile is refetched.
//
// The store is process-wide and safe for concurrent use. Reads within the
// staleness window are served from cache without a network call, and
// concurrent refreshes collapse to a single in-flight fetch. A transient
// network failure never clears the token; only an authentication failure
// from the backend does.
package session
