package quality

import (
	"fmt"
	"sort"

	"github.com/i474232898/horizon/internal/timeindex"
)

// Engine aggregates weighted quality functions over one set of series.
// An engine is built for a single evaluation and then discarded.
//
// Top-level engines (New) resolve a timestamp and return a normalised,
// rounded score. Sorted engines (NewSorted) are nested inside a family,
// take an already resolved index and return the raw contribution sum.
type Engine struct {
	weights   WeightMap
	functions []Function
	matched   []Function
	series    []Series
	times     []int64
	sorted    bool
	total     float64
}

// Factor is one family's line in a Report.
type Factor struct {
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	Weight    float64  `json:"weight"`
	Weighted  float64  `json:"weighted"`
	Available bool     `json:"available"`
	Reason    string   `json:"reason"`
	Bands     []Reason `json:"bands,omitempty"`
}

// Report is the outcome of a top-level evaluation.
type Report struct {
	Score               float64  `json:"score"`
	Index               int      `json:"index"`
	Time                int64    `json:"time"`
	TotalPossibleWeight float64  `json:"totalPossibleWeight"`
	Factors             []Factor `json:"factors"`
}

// New builds a top-level engine over a validated bundle.
func New(weights WeightMap, functions []Function, b Bundle) (*Engine, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	names := b.Names()
	series := make([]Series, 0, len(names))
	for _, name := range names {
		series = append(series, Series{Name: name, Data: b.Series[name]})
	}

	e := newEngine(weights, functions, series)
	e.times = b.Time
	return e, nil
}

// NewSorted builds a nested engine over pre-labelled series.
func NewSorted(weights WeightMap, functions []Function, series []Series) *Engine {
	e := newEngine(weights, functions, series)
	e.sorted = true
	return e
}

func newEngine(weights WeightMap, functions []Function, series []Series) *Engine {
	e := &Engine{
		weights:   weights,
		functions: functions,
		series:    series,
	}
	for _, fn := range functions {
		if len(e.claimed(fn)) == 0 {
			continue
		}
		e.matched = append(e.matched, fn)
		e.total += weights[fn.ID()]
	}
	return e
}

// TotalPossibleWeight is the sum of weights of functions that found data.
func (e *Engine) TotalPossibleWeight() float64 {
	return e.total
}

// Matched returns the IDs of functions that found at least one series.
func (e *Engine) Matched() []string {
	ids := make([]string, 0, len(e.matched))
	for _, fn := range e.matched {
		ids = append(ids, fn.ID())
	}
	return ids
}

// Calculate evaluates a top-level engine at the sample nearest to target.
func (e *Engine) Calculate(target int64) (Report, error) {
	if e.sorted {
		return Report{}, fmt.Errorf("%w: nested engine needs a resolved index", ErrInvalidArgument)
	}

	idx, err := timeindex.Nearest(e.times, target)
	if err != nil {
		return Report{}, err
	}

	factors := make([]Factor, 0, len(e.functions))
	var sum float64
	for _, fn := range e.functions {
		series := e.claimed(fn)
		weight := e.weights[fn.ID()]
		if len(series) == 0 {
			factors = append(factors, Factor{
				Name:   fn.ID(),
				Weight: weight,
				Reason: "no data",
			})
			continue
		}

		res := fn.Evaluate(Input{
			Series:  series,
			Weights: e.weights,
			Times:   e.times,
			Target:  target,
			Index:   idx,
		})
		sum += res.Value
		factors = append(factors, newFactor(fn.ID(), weight, res))
	}
	rankFactors(factors)

	report := Report{
		Index:               idx,
		Time:                e.times[idx],
		TotalPossibleWeight: e.total,
		Factors:             factors,
	}
	if e.total > 0 {
		report.Score = Round2(clamp(sum/e.total, 0, 1))
	}
	return report, nil
}

// CalculateAt evaluates a nested engine at a resolved index. The result is
// the raw weighted sum; callers normalise it against TotalPossibleWeight.
func (e *Engine) CalculateAt(index int) (float64, []Reason) {
	var (
		sum     float64
		reasons []Reason
	)
	for _, fn := range e.matched {
		res := fn.Evaluate(Input{
			Series:  e.claimed(fn),
			Weights: e.weights,
			Index:   index,
			Sorted:  true,
		})
		sum += res.Value
		reasons = append(reasons, res.Reasoning...)
	}
	return sum, reasons
}

func (e *Engine) claimed(fn Function) []Series {
	var out []Series
	for _, s := range e.series {
		if fn.Claims(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

func newFactor(name string, weight float64, res Result) Factor {
	f := Factor{
		Name:      name,
		Weight:    weight,
		Weighted:  res.Value,
		Available: true,
		Bands:     res.Reasoning,
		Reason:    "evaluated",
	}
	if weight > 0 {
		f.Score = res.Value / weight
	}
	if len(res.Reasoning) == 0 {
		f.Reason = "no usable bands"
	}
	return f
}

// rankFactors orders available factors by weighted contribution, highest
// first, followed by unavailable ones. Ties fall back to name.
func rankFactors(factors []Factor) {
	sort.SliceStable(factors, func(i, j int) bool {
		a, b := factors[i], factors[j]
		if a.Available != b.Available {
			return a.Available
		}
		if a.Weighted != b.Weighted {
			return a.Weighted > b.Weighted
		}
		return a.Name < b.Name
	})
}
