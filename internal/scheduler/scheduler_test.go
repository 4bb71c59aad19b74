package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingRunner struct {
	runs int32
	err  error
}

func (r *countingRunner) RunDaily(_ context.Context) error {
	atomic.AddInt32(&r.runs, 1)
	return r.err
}

func TestRunExecutesImmediatelyAndStopsOnCancel(t *testing.T) {
	runner := &countingRunner{}
	s := New(Config{Runner: runner, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runner.runs) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRepeatsOnInterval(t *testing.T) {
	runner := &countingRunner{}
	s := New(Config{Runner: runner, Interval: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runner.runs) >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestRunCycleTracksHealth(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := New(Config{Runner: &countingRunner{}})
		s.runCycle(context.Background())

		status := s.Health().GetStatus("delivery")
		assert.True(t, status.Healthy)
		assert.False(t, s.lastDelivery.IsZero())
	})

	t.Run("failure", func(t *testing.T) {
		s := New(Config{Runner: &countingRunner{err: assert.AnError}})
		s.runCycle(context.Background())

		status := s.Health().GetStatus("delivery")
		assert.False(t, status.Healthy)
		assert.Equal(t, assert.AnError, status.LastError)
		assert.False(t, s.Health().IsOverallHealthy())
	})
}

func TestNewDefaultsToDailyInterval(t *testing.T) {
	s := New(Config{Runner: &countingRunner{}})
	assert.Equal(t, 24*time.Hour, s.interval)
}

func TestHealthTracker(t *testing.T) {
	h := NewHealth()

	t.Run("unknown component", func(t *testing.T) {
		assert.Nil(t, h.GetStatus("nonexistent"))
		assert.True(t, h.IsOverallHealthy())
	})

	t.Run("set healthy", func(t *testing.T) {
		h.SetHealthy("delivery", "ok")
		status := h.GetStatus("delivery")
		assert.True(t, status.Healthy)
		assert.Equal(t, "ok", status.Message)
		assert.Nil(t, status.LastError)
		assert.WithinDuration(t, time.Now(), status.LastSuccess, time.Second)
	})

	t.Run("set unhealthy", func(t *testing.T) {
		h.SetUnhealthy("email", assert.AnError)
		status := h.GetStatus("email")
		assert.False(t, status.Healthy)
		assert.Equal(t, assert.AnError.Error(), status.Message)
		assert.False(t, h.IsOverallHealthy())
	})

	t.Run("all statuses", func(t *testing.T) {
		statuses := h.GetAllStatuses()
		assert.Len(t, statuses, 2)
	})
}
