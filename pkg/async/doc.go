// Package async implements a minimal Future pattern over goroutines.
//
// It exists for call sites that fan out a small, fixed number of remote
// requests and need each typed result back, such as requesting a shipping
// fee and a lead-time window in parallel:
//
//	feeF := async.Async(ctx, req, client.Fee)
//	winF := async.Async(ctx, req, client.LeadTime)
//
//	fee, feeErr := feeF.Await()
//	win, winErr := winF.Await()
//
// All operations are safe for concurrent use. Each Async call spawns exactly
// one goroutine, and context cancellation is checked before execution starts.
package async
