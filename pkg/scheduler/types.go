package scheduler

import (
	"context"
)

// Work is a unit of work run by the scheduler. It must honor ctx.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future gives access to the result of submitted work.
type Future[T any] struct {
	c      chan Result[T]
	cancel context.CancelFunc
}

func newFuture[T any](c chan Result[T], cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

// C returns the channel delivering exactly one result.
func (f *Future[T]) C() <-chan Result[T] {
	return f.c
}

// Stop cancels the work context. The result, if any, is still delivered.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the work finishes or ctx is done. When ctx ends first the
// work is canceled and ctx's error is returned.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case r := <-f.c:
		f.cancel()
		return r.Data, r.Err
	case <-ctx.Done():
		f.cancel()
		var zero T
		return zero, ctx.Err()
	}
}
