// Package ghn is the client for the Giao Hàng Nhanh delivery gateway. It
// provides the fee and lead time lookups behind shipping estimates, and
// the province, district, and ward master data behind the address form.
//
// Every response travels in a uniform envelope whose code field decides
// success; an HTTP 200 with a non-200 envelope code is a rejection and is
// surfaced with the gateway's message.
package ghn
