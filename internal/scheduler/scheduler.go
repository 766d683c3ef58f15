package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner drops expired history.
type Pruner interface {
	Prune(now time.Time) int
}

// Scheduler periodically sweeps the plan history.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new Scheduler. A nil logger falls back to slog.Default.
func New(pruner Pruner, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pruner:    pruner,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
		now:       time.Now,
	}
}

// Start schedules the retention sweep and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.pruner == nil {
		s.logger.Info("no store to prune; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("retention sweep scheduled", "interval", interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) sweep() {
	removed := s.pruner.Prune(s.now())
	s.logger.Debug("retention sweep completed", "removed", removed)
}
