package coach

import (
	"context"
	"fmt"
	"time"
)

// runWithTimeout races fn against a deadline. The derived context is
// cancelled when the race is decided either way, so a losing remote call is
// actually torn down at the transport level rather than abandoned.
func runWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn(ctx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
