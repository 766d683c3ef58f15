package quality

import "fmt"

// Input is everything a quality function sees during one evaluation.
type Input struct {
	// Series holds only the series the function claimed.
	Series  []Series
	Weights WeightMap
	// Times is the bundle's time axis; nil for nested evaluations.
	Times  []int64
	Target int64
	// Index is the resolved position of Target on the time axis.
	Index  int
	Sorted bool
}

// Reason is one line of a score breakdown.
type Reason struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Detail       string  `json:"detail,omitempty"`
}

// Result is a function's contribution, already multiplied by its weight.
type Result struct {
	Value     float64
	Reasoning []Reason
}

// Function is a unit of scoring logic for one variable family or band.
// The set of implementations is closed: CloudCover, Moisture, Visibility,
// HighCloudBand and ProximityBand.
type Function interface {
	// ID is the function's weight-map key.
	ID() string
	// Claims reports whether the named series belongs to this function.
	Claims(name string) bool
	Evaluate(in Input) Result

	quality()
}

func weighted(name string, score, weight float64, detail string) Result {
	return Result{
		Value: score * weight,
		Reasoning: []Reason{{
			Name:         name,
			Score:        score,
			Weight:       weight,
			Contribution: score * weight,
			Detail:       detail,
		}},
	}
}

// ProximityBand scores one series by its closeness to Optimum.
type ProximityBand struct {
	Name    string
	Optimum float64
}

func (b ProximityBand) ID() string              { return b.Name }
func (b ProximityBand) Claims(name string) bool { return name == b.Name }
func (ProximityBand) quality()                  {}

func (b ProximityBand) Evaluate(in Input) Result {
	s, ok := findSeries(in.Series, b.Name)
	if !ok {
		return Result{}
	}
	score := s.mean(in.Index, func(v float64) float64 {
		return Proximity(v, b.Optimum)
	})
	return weighted(b.Name, score, in.Weights[b.Name], fmt.Sprintf("optimum %.4g", b.Optimum))
}

// HighCloudBand scores one cloud cover series with a HighCloudCurve.
type HighCloudBand struct {
	Name  string
	Curve HighCloudCurve
}

func (b HighCloudBand) ID() string              { return b.Name }
func (b HighCloudBand) Claims(name string) bool { return name == b.Name }
func (HighCloudBand) quality()                  {}

func (b HighCloudBand) Evaluate(in Input) Result {
	s, ok := findSeries(in.Series, b.Name)
	if !ok {
		return Result{}
	}
	score := s.mean(in.Index, b.Curve.Score)
	return weighted(b.Name, score, in.Weights[b.Name], fmt.Sprintf("curve threshold %.0f%%", b.Curve.Threshold))
}
