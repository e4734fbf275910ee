// Package remote defines the error taxonomy shared by every component that
// talks to a backend: authentication (401), authorization (403), server
// (5xx), network (no response or timeout), and business rejection (a
// well-formed error payload). Timeouts are deliberately not a distinct
// kind; they classify as network failures.
package remote
