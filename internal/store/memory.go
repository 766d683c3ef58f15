package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/horizon/internal/weather"
)

var (
	// ErrNotFound is returned when no plan is available for a given location.
	ErrNotFound = errors.New("no forecast plan for location")
)

// PlanHistory holds the plans computed for one location, oldest first.
type PlanHistory struct {
	Location weather.Location
	Plans    []weather.Plan
}

var _ weather.Store = (*MemoryStore)(nil)

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*PlanHistory

	maxHistory int           // max number of plans per location
	maxAge     time.Duration // optional max age for plans

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited; the same goes for maxAge.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*PlanHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SavePlan appends a plan for a location and enforces retention.
func (s *MemoryStore) SavePlan(loc weather.Location, plan weather.Plan) {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &PlanHistory{Location: loc}
		s.data[key] = history
	}
	history.Plans = append(history.Plans, plan)

	if s.maxHistory > 0 && len(history.Plans) > s.maxHistory {
		over := len(history.Plans) - s.maxHistory
		history.Plans = history.Plans[over:]
	}
	s.expire(history, s.now())
}

// GetLatest returns the most recent plan for a location.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[loc.Key()]
	if !ok || len(history.Plans) == 0 {
		return weather.Plan{}, ErrNotFound
	}
	return history.Plans[len(history.Plans)-1], nil
}

// GetRange returns all plans for a location created between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[loc.Key()]
	if !ok || len(history.Plans) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Plan
	for _, plan := range history.Plans {
		if !plan.CreatedAt.Before(from) && !plan.CreatedAt.After(to) {
			result = append(result, plan)
		}
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// Prune drops plans older than the configured max age and forgets locations
// left without history. It returns the number of plans removed.
func (s *MemoryStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, history := range s.data {
		removed += s.expire(history, now)
		if len(history.Plans) == 0 {
			delete(s.data, key)
		}
	}
	return removed
}

// Locations returns the number of locations with stored plans.
func (s *MemoryStore) Locations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// expire trims plans created before now-maxAge. Plans are kept in insertion
// order, which is creation order for a single planner.
func (s *MemoryStore) expire(history *PlanHistory, now time.Time) int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := now.Add(-s.maxAge)

	i := 0
	for ; i < len(history.Plans); i++ {
		if !history.Plans[i].CreatedAt.Before(cutoff) {
			break
		}
	}
	history.Plans = history.Plans[i:]
	return i
}
