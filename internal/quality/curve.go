package quality

import "math"

// windowSize is the number of consecutive samples averaged per series,
// starting at the resolved index.
const windowSize = 2

// Proximity scores how close input is to optimal. It ramps linearly from 0
// up to 1 at the optimum and back down to 0 at twice the optimum.
func Proximity(input, optimal float64) float64 {
	if optimal <= 0 {
		return 0
	}
	r := input / optimal
	if input < optimal {
		return math.Max(r, 0)
	}
	return math.Max(2-r, 0)
}

// HighCloudCurve is the two-piece score used for high cloud cover (in
// percent). Below Threshold a wide downward parabola rewards moderate cover;
// above it a narrow parabola centred on UpperVertex penalises overcast.
type HighCloudCurve struct {
	Threshold   float64 `yaml:"threshold" json:"threshold" validate:"gte=0,lte=100"`
	LowerVertex float64 `yaml:"lower_vertex" json:"lowerVertex"`
	LowerScale  float64 `yaml:"lower_scale" json:"lowerScale" validate:"gt=0"`
	UpperVertex float64 `yaml:"upper_vertex" json:"upperVertex"`
	UpperScale  float64 `yaml:"upper_scale" json:"upperScale" validate:"gt=0"`
}

// Score maps a cover percentage onto [0, 1].
func (c HighCloudCurve) Score(cover float64) float64 {
	var v float64
	if cover > c.Threshold {
		v = math.Min(-c.UpperScale*square(cover-c.UpperVertex)+100, 100)
	} else {
		v = -c.LowerScale*square(cover-c.LowerVertex) + 100
	}
	return clamp(v/100, 0, 1)
}

// Round2 rounds to the nearest hundredth, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func square(v float64) float64 { return v * v }

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
