package core

import (
	"context"
	"time"
)

// TimedCall races a unit of work against a deadline and returns whichever
// resolves first. On timeout the caller proceeds immediately with
// ErrModelTimeout and the work is abandoned: its context is cancelled
// (best-effort cancellation of the in-flight remote call) and any result it
// eventually produces parks in a buffered channel and is dropped, never
// delivered to the stale caller.
//
// Cancellation is best-effort only. The SDK transports honor context
// cancellation, but the contract guaranteed here is solely that the caller
// is released at the deadline, not that the remote side stops executing or
// stops billing.
func TimedCall[T any](ctx context.Context, deadline time.Duration, work func(ctx context.Context) (T, error)) (T, error) {
	workCtx, cancel := context.WithCancel(ctx)

	type outcome struct {
		val T
		err error
	}

	// Buffer of one: the worker goroutine never blocks, so an abandoned call
	// cannot leak a goroutine past its own completion.
	done := make(chan outcome, 1)
	go func() {
		val, err := work(workCtx)
		done <- outcome{val: val, err: err}
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case out := <-done:
		cancel()
		return out.val, out.err
	case <-timer.C:
		cancel()
		var zero T
		return zero, ErrModelTimeout
	case <-ctx.Done():
		cancel()
		var zero T
		return zero, ctx.Err()
	}
}
