package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a Redis command that failed at the connection level.
var ErrNetwork = errors.New("network error")

// RetryableError marks a backend failure worth another attempt. The Redis
// backend wraps connection errors with it; a plain redis.Nil miss or a
// protocol error is returned unwrapped and fails fast.
type RetryableError struct{ Err error }

// Retryable wraps err so [RetryWithBackoff] will try again. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff is the schedule Redis commands are retried on.
type backoff struct {
	attempts int
	first    time.Duration
}

var redisBackoff = backoff{attempts: 3, first: time.Second}

// RetryWithBackoff runs fn until it succeeds, returns a non-retryable
// error, or the Redis retry budget is spent. The wait doubles after each
// failure and is cut short by ctx.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return redisBackoff.run(ctx, fn)
}

func (b backoff) run(ctx context.Context, fn func() error) error {
	wait := b.first
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.attempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
