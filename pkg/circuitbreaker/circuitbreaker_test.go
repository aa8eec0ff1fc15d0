package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream unavailable")

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("test", cfg)
	cb.now = clock.Now
	cb.mu.Lock()
	cb.toNewGeneration(clock.Now())
	cb.mu.Unlock()
	return cb, clock
}

func fail() error    { return errUpstream }
func succeed() error { return nil }

func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb, _ := newTestBreaker(Config{Interval: 10 * time.Second, Timeout: 30 * time.Second})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_TripsAndRejects(t *testing.T) {
	var transitions []string
	cb, _ := newTestBreaker(Config{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errUpstream, "熔断前返回原始错误")
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断器打开时不应调用下游")
	assert.Equal(t, []string{"CLOSED->OPEN"}, transitions)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 2 },
	})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.Equal(t, StateOpen, cb.State())

	clock.Advance(time.Minute + time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	_ = cb.Execute(fail)
	clock.Advance(2 * time.Minute)

	assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	errBadRequest := errors.New("bad request")
	cb, _ := newTestBreaker(Config{
		Timeout:     time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errBadRequest)
		},
	})

	assert.ErrorIs(t, cb.Execute(func() error { return errBadRequest }), errBadRequest)
	assert.Equal(t, StateClosed, cb.State(), "调用方错误不计入失败")
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Interval:    10 * time.Second,
		Timeout:     time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	clock.Advance(11 * time.Second)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCounts_FailureRate(t *testing.T) {
	assert.Equal(t, float64(0), Counts{}.FailureRate())
	assert.InDelta(t, 0.25, Counts{Requests: 4, TotalFailures: 1}.FailureRate(), 1e-9)
}
