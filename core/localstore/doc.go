// Package localstore holds the only durable client-side state: the sealed
// auth token and a bounded recent-search list. The cart is intentionally
// never persisted locally; the server's snapshot is the sole source of
// truth for it.
package localstore
