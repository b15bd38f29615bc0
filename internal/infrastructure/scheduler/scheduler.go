// Package scheduler runs the connector's periodic jobs on fixed
// intervals: the nightly catalogue import and the rolling pricing
// refresh.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one unit of periodic work
type Job interface {
	// Name identifies the job in logs
	Name() string
	// Run executes the job once
	Run(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

// Name identifies the job in logs
func (j JobFunc) Name() string { return j.JobName }

// Run executes the job once
func (j JobFunc) Run(ctx context.Context) error { return j.Fn(ctx) }

type entry struct {
	job      Job
	interval time.Duration
}

// Scheduler runs registered jobs on their intervals. Jobs run in their
// own goroutine; a slow job delays only itself. Each run gets a context
// bounded by the job timeout.
type Scheduler struct {
	jobs       []entry
	jobTimeout time.Duration
	logger     *zap.Logger

	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewScheduler creates a scheduler with the given per-run timeout
func NewScheduler(jobTimeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		jobTimeout: jobTimeout,
		logger:     logger.Named("scheduler"),
		stopCh:     make(chan struct{}),
	}
}

// Register adds a job to run on the given interval. Must be called
// before Start.
func (s *Scheduler) Register(job Job, interval time.Duration) {
	s.jobs = append(s.jobs, entry{job: job, interval: interval})
}

// Start launches one ticker goroutine per registered job
func (s *Scheduler) Start() {
	for _, e := range s.jobs {
		s.wg.Add(1)
		go s.loop(e)
		s.logger.Info("Scheduled job",
			zap.String("job", e.job.Name()),
			zap.Duration("interval", e.interval),
		)
	}
}

// Stop halts all job loops and waits for in-flight runs to return
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Scheduler) loop(e entry) {
	defer s.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.runOnce(e.job)
		}
	}
}

func (s *Scheduler) runOnce(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	started := time.Now()
	s.logger.Info("Job started", zap.String("job", job.Name()))

	if err := job.Run(ctx); err != nil {
		s.logger.Error("Job failed",
			zap.String("job", job.Name()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Job completed",
		zap.String("job", job.Name()),
		zap.Duration("elapsed", time.Since(started)),
	)
}
