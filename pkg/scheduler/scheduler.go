package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Task is one unit of periodic work. It should honor ctx cancellation.
type Task func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	task     Task
	running  atomic.Bool
}

// Scheduler runs registered jobs on fixed intervals. Each job is
// single-flight: if a run is still in progress when the next tick arrives,
// the tick is skipped with a warning instead of piling up a second run.
type Scheduler struct {
	logger *slog.Logger

	mu      sync.Mutex
	jobs    []*job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New creates a scheduler that logs through the given logger.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger}
}

// Register adds a named job. It must be called before Start.
func (s *Scheduler) Register(name string, interval time.Duration, task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		s.logger.Error("scheduler job registered after start, ignoring", slog.String("job", name))
		return
	}
	s.jobs = append(s.jobs, &job{name: name, interval: interval, task: task})
}

// Start launches one ticker goroutine per registered job. It returns
// immediately; jobs run until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(runCtx, j)
	}
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, j *job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, j)
		}
	}
}

// runOnce executes the job unless a previous run still holds the flight
// flag.
func (s *Scheduler) runOnce(ctx context.Context, j *job) {
	if !j.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous run still in progress, skipping tick", slog.String("job", j.name))
		return
	}
	defer j.running.Store(false)

	start := time.Now()
	if err := j.task(ctx); err != nil {
		s.logger.Error("scheduled job failed",
			slog.String("job", j.name),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("scheduled job finished",
		slog.String("job", j.name),
		slog.Duration("elapsed", time.Since(start)))
}
