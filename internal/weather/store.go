package weather

import (
	"time"
)

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SavePlan(loc Location, plan Plan)
	GetLatest(loc Location) (Plan, error)
	GetRange(loc Location, from, to time.Time) ([]Plan, error)
}

// Recorder receives evaluation outcomes for monitoring.
type Recorder interface {
	ObserveEvaluation(kind string, score float64, err error)
	ObservePlan(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveEvaluation(string, float64, error) {}
func (nopRecorder) ObservePlan(time.Duration)                {}
