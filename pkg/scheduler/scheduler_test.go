package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := New(discardLogger())
	s.Register("counter", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	s.Stop()

	got := runs.Load()
	assert.GreaterOrEqual(t, got, int32(3))
}

func TestScheduler_SlowRunSkipsTicksInsteadOfStacking(t *testing.T) {
	var starts atomic.Int32
	s := New(discardLogger())
	s.Register("slow", 20*time.Millisecond, func(ctx context.Context) error {
		starts.Add(1)
		time.Sleep(90 * time.Millisecond)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	// Ten ticks elapsed, but overlapping runs were skipped rather than
	// queued, so only a couple of runs ever started.
	got := starts.Load()
	assert.GreaterOrEqual(t, got, int32(1))
	assert.LessOrEqual(t, got, int32(3))
}

func TestScheduler_FailingJobKeepsTicking(t *testing.T) {
	var runs atomic.Int32
	s := New(discardLogger())
	s.Register("flaky", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	})

	s.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestScheduler_StopWaitsForInFlightRun(t *testing.T) {
	var finished atomic.Bool
	s := New(discardLogger())
	s.Register("lingering", 20*time.Millisecond, func(ctx context.Context) error {
		time.Sleep(60 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	assert.True(t, finished.Load())
}

func TestScheduler_RegisterAfterStartIsIgnored(t *testing.T) {
	var runs atomic.Int32
	s := New(discardLogger())
	s.Start(context.Background())
	s.Register("late", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(0), runs.Load())
}
