package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/horizon/internal/config"
	"github.com/i474232898/horizon/internal/quality"
)

var errNotFound = errors.New("not found")

type fakeStore struct {
	mu    sync.Mutex
	plans map[string][]Plan
}

func newFakeStore() *fakeStore { return &fakeStore{plans: map[string][]Plan{}} }

func (f *fakeStore) SavePlan(loc Location, plan Plan) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans[loc.Key()] = append(f.plans[loc.Key()], plan)
}

func (f *fakeStore) GetLatest(loc Location) (Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plans := f.plans[loc.Key()]
	if len(plans) == 0 {
		return Plan{}, errNotFound
	}
	return plans[len(plans)-1], nil
}

func (f *fakeStore) GetRange(loc Location, from, to time.Time) ([]Plan, error) {
	return nil, errNotFound
}

type countingRecorder struct {
	mu          sync.Mutex
	evaluations map[string]int
	failures    int
	plans       int
}

func (r *countingRecorder) ObserveEvaluation(kind string, _ float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.evaluations == nil {
		r.evaluations = map[string]int{}
	}
	r.evaluations[kind]++
	if err != nil {
		r.failures++
	}
}

func (r *countingRecorder) ObservePlan(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testForecast returns days of hourly data. Conditions are ideal for
// sunsets and overcast otherwise.
func testForecast(days int) Forecast {
	f := Forecast{
		Location: Location{Name: "Testville", Latitude: 47.37, Longitude: 8.54},
		Hourly:   map[string][]float64{},
		Daily:    testDaily(days),
	}
	names := []string{
		quality.CloudHigh, quality.CloudMid, quality.CloudLow,
		quality.Humidity150, quality.Humidity500, quality.Humidity1000,
		quality.VisibilityM,
	}
	for h := int64(0); h < int64(days)*24; h++ {
		ts := base + h*hour
		f.Hourly[HourlyTimeKey] = append(f.Hourly[HourlyTimeKey], float64(ts))

		evening := h%24 >= 17 && h%24 <= 19
		for _, name := range names {
			f.Hourly[name] = append(f.Hourly[name], sample(name, evening))
		}
	}
	return f
}

func sample(name string, good bool) float64 {
	if !good {
		if name == quality.VisibilityM {
			return 1000
		}
		return 100
	}
	switch name {
	case quality.CloudHigh:
		return 40
	case quality.CloudMid:
		return 20
	case quality.CloudLow:
		return 10
	case quality.Humidity150:
		return 3
	case quality.Humidity500:
		return 15
	case quality.Humidity1000:
		return 40
	default:
		return 20000
	}
}

func newTestService(store Store, rec Recorder, opts PlanOptions) *Service {
	scorer := quality.NewScorer(config.DefaultQuality(), discardLogger())
	return NewService(scorer, store, rec, opts, discardLogger())
}

func TestPlan(t *testing.T) {
	store := newFakeStore()
	rec := &countingRecorder{}
	svc := newTestService(store, rec, PlanOptions{Threshold: 0.6, UpcomingDays: 7})

	f := testForecast(9)
	now := at(base + 10*hour)

	plan, err := svc.Plan(context.Background(), f, now)
	require.NoError(t, err)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, now, plan.CreatedAt)
	assert.Equal(t, Sunset, plan.Current.Kind)
	assert.Equal(t, 0, plan.Current.Day)
	assert.Greater(t, plan.Current.Quality, 0.6)
	assert.True(t, plan.Notify)
	assert.NotEmpty(t, plan.Current.Factors)

	// Seven following days, sunrise and sunset each.
	require.Len(t, plan.Upcoming, 14)
	for i := 1; i < len(plan.Upcoming); i++ {
		assert.Less(t, plan.Upcoming[i-1].Time, plan.Upcoming[i].Time)
	}
	for _, ev := range plan.Upcoming {
		assert.Empty(t, ev.Factors)
		if ev.Kind == Sunrise {
			assert.Less(t, ev.Quality, 0.3)
		} else {
			assert.Greater(t, ev.Quality, 0.6)
		}
	}

	require.Len(t, plan.Ranked, 14)
	assert.Equal(t, Sunset, plan.Ranked[0].Kind)
	assert.Equal(t, Sunrise, plan.Ranked[13].Kind)

	saved, err := store.GetLatest(f.Location)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, saved.ID)

	assert.Equal(t, 8, rec.evaluations[string(Sunset)])
	assert.Equal(t, 7, rec.evaluations[string(Sunrise)])
	assert.Equal(t, 0, rec.failures)
	assert.Equal(t, 1, rec.plans)
}

func TestPlanBelowThreshold(t *testing.T) {
	svc := newTestService(newFakeStore(), nil, PlanOptions{Threshold: 0.6, UpcomingDays: 1})

	plan, err := svc.Plan(context.Background(), testForecast(3), at(base+2*hour))
	require.NoError(t, err)
	assert.Equal(t, Sunrise, plan.Current.Kind)
	assert.False(t, plan.Notify)
	assert.Len(t, plan.Upcoming, 3)
}

func TestPlanAppliesOffset(t *testing.T) {
	svc := newTestService(newFakeStore(), nil, PlanOptions{Offset: -30 * time.Minute})

	f := testForecast(2)
	plan, err := svc.Plan(context.Background(), f, at(base+12*hour))
	require.NoError(t, err)
	assert.Equal(t, f.Daily.Sunset[0]-1800, plan.Current.Target)
	assert.Empty(t, plan.Upcoming)
}

func TestPlanRejectsMalformedForecast(t *testing.T) {
	svc := newTestService(newFakeStore(), nil, PlanOptions{})

	f := testForecast(2)
	f.Hourly[quality.VisibilityM] = f.Hourly[quality.VisibilityM][:3]
	_, err := svc.Plan(context.Background(), f, at(base))
	assert.ErrorIs(t, err, quality.ErrMismatchedSeries)

	f = testForecast(2)
	delete(f.Hourly, HourlyTimeKey)
	_, err = svc.Plan(context.Background(), f, at(base))
	assert.ErrorIs(t, err, quality.ErrInvalidArgument)
}

func TestPlanCancelledContext(t *testing.T) {
	svc := newTestService(newFakeStore(), nil, PlanOptions{UpcomingDays: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Plan(ctx, testForecast(5), at(base))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScore(t *testing.T) {
	rec := &countingRecorder{}
	svc := newTestService(nil, rec, PlanOptions{})

	f := testForecast(1)
	report, err := svc.Score(f.Bundle(), base+18*hour)
	require.NoError(t, err)
	assert.Greater(t, report.Score, 0.6)
	assert.Equal(t, 1, rec.evaluations["adhoc"])
	assert.Equal(t, config.DefaultQuality(), svc.Params())
}
