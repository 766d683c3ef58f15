package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/horizon/internal/quality"
)

// PlanOptions tunes event selection and notification.
type PlanOptions struct {
	// Offset is added to every sun event before scoring.
	Offset time.Duration
	// Margin keeps an event current for a while after it passed.
	Margin       time.Duration
	Threshold    float64
	UpcomingDays int
}

// Service scores forecasts and keeps the resulting plans.
type Service struct {
	scorer   *quality.Scorer
	store    Store
	recorder Recorder
	opts     PlanOptions
	logger   *slog.Logger
}

// NewService creates a new Service. recorder and logger may be nil.
func NewService(scorer *quality.Scorer, store Store, recorder Recorder, opts PlanOptions, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		scorer:   scorer,
		store:    store,
		recorder: recorder,
		opts:     opts,
		logger:   logger,
	}
}

// Params exposes the scoring parameters in use.
func (s *Service) Params() quality.Params {
	return s.scorer.Params()
}

// Score evaluates a single bundle at target.
func (s *Service) Score(b quality.Bundle, target int64) (quality.Report, error) {
	report, err := s.scorer.Evaluate(b, target)
	s.recorder.ObserveEvaluation("adhoc", report.Score, err)
	return report, err
}

// Plan scores the current sun event and every upcoming one in f, flags the
// current event against the notify threshold and stores the result.
func (s *Service) Plan(ctx context.Context, f Forecast, now time.Time) (Plan, error) {
	started := time.Now()

	bundle := f.Bundle()
	if err := bundle.Validate(); err != nil {
		return Plan{}, err
	}

	current, err := NextEvent(f.Daily, now, s.opts.Margin)
	if err != nil {
		return Plan{}, err
	}
	upcoming := UpcomingEvents(f.Daily, current, s.opts.UpcomingDays)

	events := append([]Event{current}, upcoming...)
	scored := make([]EventForecast, len(events))

	g, ctx := errgroup.WithContext(ctx)
	for i, ev := range events {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := ev.Time + int64(s.opts.Offset/time.Second)
			report, err := s.scorer.Evaluate(bundle, target)
			s.recorder.ObserveEvaluation(string(ev.Kind), report.Score, err)
			if err != nil {
				return fmt.Errorf("score %s on day %d: %w", ev.Kind, ev.Day, err)
			}

			scored[i] = EventForecast{Event: ev, Target: target, Quality: report.Score}
			if i == 0 {
				scored[i].Factors = report.Factors
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Plan{}, err
	}

	plan := Plan{
		ID:        uuid.NewString(),
		Location:  f.Location,
		CreatedAt: now.UTC(),
		Current:   scored[0],
		Threshold: s.opts.Threshold,
		Notify:    MeetsThreshold(scored[0].Quality, s.opts.Threshold),
		Upcoming:  scored[1:],
		Ranked:    RankEvents(scored[1:]),
	}

	if s.store != nil {
		s.store.SavePlan(f.Location, plan)
	}
	s.recorder.ObservePlan(time.Since(started))

	s.logger.Info("forecast planned",
		"location", f.Location.Key(),
		"event", current.Kind,
		"quality", plan.Current.Quality,
		"notify", plan.Notify,
		"upcoming", len(plan.Upcoming),
	)
	return plan, nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Plan, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Plan, error) {
	return s.store.GetRange(loc, from, to)
}
