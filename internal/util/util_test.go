package util

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAddrInUse(t *testing.T) {
	assert.False(t, IsAddrInUse(nil))
	assert.False(t, IsAddrInUse(errors.New("connection refused")))
	assert.True(t, IsAddrInUse(fmt.Errorf("listen: %w", syscall.EADDRINUSE)))
	assert.True(t, IsAddrInUse(errors.New("listen tcp 127.0.0.1:2049: bind: address already in use")))
}

func TestRetryWithResultRecovers(t *testing.T) {
	calls := 0
	got, err := RetryWithResult(context.Background(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return calls, nil
	}, retry.Attempts(3), retry.Delay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestRetryWithResultStopsOnUnretryable(t *testing.T) {
	calls := 0
	_, err := RetryWithResult(context.Background(), func() (int, error) {
		calls++
		return 0, errors.New("permission denied")
	}, ListenRetryOptions(context.Background())...)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestRetryWithResultDefaults(t *testing.T) {
	got, err := RetryWithResult(context.Background(), func() (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestRetryWithResultStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := RetryWithResult(ctx, func() (int, error) {
		calls++
		return 0, errors.New("transient")
	}, retry.Attempts(5), retry.Delay(time.Millisecond))

	require.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

func TestPollUntilTimeout(t *testing.T) {
	err := PollUntil(context.Background(), PollConfig{Timeout: 30 * time.Millisecond, Interval: 5 * time.Millisecond}, func() bool {
		return false
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	require.NoError(t, WaitForListener(context.Background(), DefaultPollConfig(), ln.Addr().String()))
}
