package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(Settings{
		Name:        "test",
		MaxRequests: 3,
		Interval:    time.Second,
		Timeout:     timeout,
	})
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(time.Minute)
	failing := func() error { return errors.New("boom") }

	assert.Equal(t, "closed", cb.State())

	for i := 0; i < 3; i++ {
		require.Error(t, cb.Execute(failing))
	}
	assert.Equal(t, "open", cb.State())

	// While open, calls are refused without running the function.
	ran := false
	err := cb.Execute(func() error { ran = true; return nil })
	require.Error(t, err)
	assert.False(t, ran)
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := newTestBreaker(time.Millisecond)
	failing := func() error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		require.Error(t, cb.Execute(failing))
	}
	require.Equal(t, "open", cb.State())

	time.Sleep(5 * time.Millisecond)

	// First call after the timeout is the probe; on success the breaker
	// closes again.
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, "closed", cb.State())
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := newTestBreaker(time.Minute)
	failing := func() error { return errors.New("boom") }

	require.Error(t, cb.Execute(failing))
	require.Error(t, cb.Execute(failing))
	require.NoError(t, cb.Execute(func() error { return nil }))

	// Two more failures are below the threshold again.
	require.Error(t, cb.Execute(failing))
	require.Error(t, cb.Execute(failing))
	assert.Equal(t, "closed", cb.State())
}
