package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

// backoff retries transient backend failures, doubling the delay after each
// failed attempt.
type backoff struct {
	attempts int
	delay    time.Duration
}

// redisBackoff is the policy of every [RedisCache] read and write.
var redisBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

// transientError marks a failure worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// transient marks err as retryable. It returns nil for nil.
func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var te *transientError
	return stderrors.As(err, &te)
}

// do runs fn until it succeeds or fails with an error not marked transient.
// When every attempt fails transiently the last failure is returned as an
// EXTERNAL error; a context that ends while waiting returns ctx.Err().
func (b backoff) do(ctx context.Context, fn func() error) error {
	attempts := max(b.attempts, 1)
	delay := b.delay
	var last error

	for i := range attempts {
		err := fn()
		if err == nil || !isTransient(err) {
			return err
		}
		last = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return errors.Wrap(errors.ErrCodeExternal, last, "cache backend unavailable after %d attempts", attempts)
}
