package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// Connect retry policy for remote backends. Three attempts at 250ms, 500ms
// cover a Redis container that starts a moment after the server.
const (
	connectAttempts = 3
	connectDelay    = 250 * time.Millisecond
)

// retry runs fn up to attempts times, doubling delay after each failure.
// Only errors for which transient returns true are retried; anything else is
// returned at once. Cancelling ctx stops the wait and returns ctx.Err().
func retry(ctx context.Context, attempts int, delay time.Duration, transient func(error) bool, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !transient(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// isNetError reports connection-level failures worth another try.
func isNetError(err error) bool {
	var ne net.Error
	return errors.As(err, &ne)
}
