// Package scheduler implements a small typed worker pool returning futures.
//
// The serve command creates a Scheduler with a single worker and submits every
// inventory build to it, so concurrent HTTP requests never run queries against
// the source database at the same time. Each request waits on its Future and
// cancels the build when the client goes away.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────┐
//	│                        Scheduler[T]                       │
//	│                                                           │
//	│   Submit(w) ──► submit chan ──► run() ──► pending queue   │
//	│                                   │                       │
//	│                              dispatch()                   │
//	│                                   │  (idle workers > 0)   │
//	│                                   ▼                       │
//	│                 ┌──────────┐ ┌──────────┐ ┌──────────┐    │
//	│                 │ worker 1 │ │ worker 2 │ │ worker N │    │
//	│                 └────┬─────┘ └────┬─────┘ └────┬─────┘    │
//	│                      └──── done chan ──────────┘          │
//	└───────────────────────────────────────────────────────────┘
//
// Work is started in submission order. A finished worker signals the done
// channel, which makes run() hand it the next pending request.
//
// # Futures
//
// Submit returns immediately with a Future[T]:
//
//   - C() delivers exactly one Result[T]
//   - Stop() cancels the work context
//   - Wait(ctx) blocks for the result, canceling the work if ctx ends first
//
// # Panic Recovery
//
// A panicking work function does not take the scheduler down. Its future
// receives an error ("worker panicked: ...") and the worker slot is released.
//
// # Shutdown
//
// Close cancels the context of every request, resolves still pending requests
// with context.Canceled and waits for running work to return. Close is
// idempotent. Submit after Close resolves with context.Canceled.
//
// # Usage Example
//
//	sched := scheduler.NewScheduler[*models.Inventory](1)
//	defer sched.Close()
//
//	inv, err := sched.Submit(svc.Build).Wait(ctx)
package scheduler
