// Package util provides shared utility functions for mocktree.
package util

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
)

// ListenRetryOptions returns retry options for binding a listener whose
// address may still be held by a previous process.
func ListenRetryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Attempts(5),
		retry.Delay(100 * time.Millisecond),
		retry.MaxDelay(1 * time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(IsAddrInUse),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	}
}

// RetryWithResult executes fn with retry logic and returns the result.
// Retries stop when ctx is done; opts may override that.
func RetryWithResult[T any](ctx context.Context, fn func() (T, error), opts ...retry.Option) (T, error) {
	opts = append([]retry.Option{retry.Context(ctx)}, opts...)
	return retry.DoWithData(fn, opts...)
}

// Common retry predicates

// IsAddrInUse returns true if the error indicates the listen address is taken.
func IsAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	return strings.Contains(err.Error(), "address already in use")
}
