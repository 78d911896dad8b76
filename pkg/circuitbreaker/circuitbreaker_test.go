package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

func fail(context.Context) error { return errBackend }
func ok(context.Context) error   { return nil }

func newTestBreaker(clock *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})
	cb.now = func() time.Time { return *clock }
	return cb
}

func TestDefaultsFillZeroConfig(t *testing.T) {
	t.Parallel()
	cb := NewCircuitBreaker(Config{})
	assert.Equal(t, DefaultConfig(), cb.config)
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	ctx := context.Background()

	require.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	require.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	require.NoError(t, cb.Execute(ctx, ok), "success resets the failure count")
	require.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	require.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	assert.Equal(t, StateClosed, cb.State())

	require.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, called, "open breaker fails fast")
}

func TestHalfOpenRecovery(t *testing.T) {
	t.Parallel()

	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	require.Equal(t, StateOpen, cb.State())

	clock = clock.Add(time.Minute)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateHalfOpen, cb.State())
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	clock = clock.Add(2 * time.Minute)

	require.ErrorIs(t, cb.Execute(ctx, fail), errBackend)
	assert.Equal(t, StateOpen, cb.State())
}

func TestHalfOpenLimitsProbes(t *testing.T) {
	t.Parallel()

	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	clock = clock.Add(time.Minute)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Execute(ctx, func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	assert.ErrorIs(t, cb.Execute(ctx, ok), ErrCircuitBreakerOpen)
	close(release)
	require.NoError(t, <-done)
}

func TestCanceledCallsDoNotCount(t *testing.T) {
	t.Parallel()

	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		err := cb.Execute(ctx, func(context.Context) error { return context.Canceled })
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestStateChangeHookAndReset(t *testing.T) {
	t.Parallel()

	clock := time.Unix(0, 0)
	var seen []string
	cb := newTestBreaker(&clock).OnStateChange(func(from, to State) {
		seen = append(seen, from.String()+"->"+to.String())
	})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	cb.Reset()

	assert.Equal(t, []string{"closed->open", "open->closed"}, seen)
	assert.Equal(t, StateClosed, cb.State())
}

func TestStaleCallDoesNotFreeHalfOpenSlot(t *testing.T) {
	t.Parallel()

	clock := time.Unix(0, 0)
	cb := newTestBreaker(&clock)
	ctx := context.Background()

	// 关闭状态下放行，一直阻塞到熔断器进入半开之后
	releaseStale := make(chan struct{})
	staleStarted := make(chan struct{})
	staleDone := make(chan error, 1)
	go func() {
		staleDone <- cb.Execute(ctx, func(context.Context) error {
			close(staleStarted)
			<-releaseStale
			return nil
		})
	}()
	<-staleStarted

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	require.Equal(t, StateOpen, cb.State())
	clock = clock.Add(time.Minute)

	releaseProbe := make(chan struct{})
	probeStarted := make(chan struct{})
	probeDone := make(chan error, 1)
	go func() {
		probeDone <- cb.Execute(ctx, func(context.Context) error {
			close(probeStarted)
			<-releaseProbe
			return nil
		})
	}()
	<-probeStarted

	close(releaseStale)
	require.NoError(t, <-staleDone)

	assert.ErrorIs(t, cb.Execute(ctx, ok), ErrCircuitBreakerOpen, "probe slot still taken")
	assert.Equal(t, StateHalfOpen, cb.State())

	close(releaseProbe)
	require.NoError(t, <-probeDone)
	assert.Equal(t, StateHalfOpen, cb.State(), "stale success is not counted towards recovery")
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.State())
}
