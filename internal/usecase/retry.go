package usecase

import (
	"context"
	"fmt"
	"log"
	"time"
)

const defaultRetryBackoff = 100 * time.Millisecond

// withRetry runs an upstream read and, if it fails, runs it once more after
// backoff. A second failure is wrapped in ErrUpstream.
func withRetry[T any](ctx context.Context, op string, backoff time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}
	log.Printf("[quote][usecase] upstream read failed, retrying op=%s backoff=%s err=%v", op, backoff, err)

	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %s: %v", ErrUpstream, op, ctx.Err())
	case <-timer.C:
	}

	v, err = fn(ctx)
	if err != nil {
		log.Printf("[quote][usecase] upstream retry failed op=%s err=%v", op, err)
		return zero, fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
	}
	return v, nil
}
