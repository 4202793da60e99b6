// Package retry provides bounded fixed-interval polling for slow backend
// state transitions, such as waiting for a virtual machine to reach a
// target power state.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Defaults match the backend's typical state-transition latency: a node
// usually settles within a few poll rounds, and a minute without reaching
// the target state means it will not get there on its own.
const (
	DefaultInterval = 2 * time.Second
	DefaultTimeout  = 60 * time.Second
)

// ErrTimeout is wrapped into the error returned when the timeout elapses
// before the operation succeeds.
var ErrTimeout = errors.New("timed out")

type options struct {
	interval time.Duration
	timeout  time.Duration
}

// Option configures a Poll run.
type Option func(*options)

// WithInterval sets the pause between attempts.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithTimeout sets the total time budget across all attempts.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }

func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks an error as non-retryable. Poll stops immediately when the
// operation returns one.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err carries the non-retryable marker.
func IsFatal(err error) bool {
	var fatal *fatalError
	return errors.As(err, &fatal)
}

// Poll runs fn immediately, then at a fixed interval, until fn succeeds,
// returns a fatal error, the timeout elapses, or ctx is cancelled.
//
// The first attempt always runs: ctx is checked after an attempt, never
// before. On timeout the returned error wraps both ErrTimeout and the
// last attempt's error so callers can inspect either.
func Poll(ctx context.Context, fn func() error, opts ...Option) error {
	o := options{
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if IsFatal(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if time.Since(start)+o.interval > o.timeout {
			return fmt.Errorf("%w after %s: %w", ErrTimeout, o.timeout, err)
		}

		select {
		case <-time.After(o.interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
