package quality

import (
	"fmt"
	"sort"
)

// Bundle is a set of named hourly series sharing one time axis.
// Data[i] of every series belongs to Time[i].
type Bundle struct {
	Time   []int64
	Series map[string][]float64
}

// Validate checks that the bundle has a time axis and that every series
// is aligned with it.
func (b Bundle) Validate() error {
	if len(b.Time) == 0 {
		return ErrEmptyTime
	}
	for _, name := range b.Names() {
		if n := len(b.Series[name]); n != len(b.Time) {
			return fmt.Errorf("%w: %s has %d samples, want %d", ErrMismatchedSeries, name, n, len(b.Time))
		}
	}
	return nil
}

// Names returns the series names in lexical order.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b.Series))
	for name := range b.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series is a labelled sample sequence handed to nested engines.
type Series struct {
	Name string
	Data []float64
}

// at returns the sample at idx, clamped to the ends of the series.
func (s Series) at(idx int) float64 {
	if len(s.Data) == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Data) {
		idx = len(s.Data) - 1
	}
	return s.Data[idx]
}

// mean averages score over the window starting at idx. Window positions
// past the end reuse the last sample.
func (s Series) mean(idx int, score func(float64) float64) float64 {
	if len(s.Data) == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < windowSize; i++ {
		sum += score(s.at(idx + i))
	}
	return sum / windowSize
}

func findSeries(series []Series, name string) (Series, bool) {
	for _, s := range series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// WeightMap maps a quality function ID to its weight.
type WeightMap map[string]float64

// Clone returns an independent copy.
func (w WeightMap) Clone() WeightMap {
	out := make(WeightMap, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Sum returns the total of all weights.
func (w WeightMap) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
