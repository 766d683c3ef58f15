package quality

import (
	"fmt"
	"math"
)

// Family IDs used as keys of the top-level weight map.
const (
	FamilyCloudCover = "cloudcover"
	FamilyMoisture   = "moisture"
	FamilyVisibility = "visibility"
)

// Series names understood by the default parameters. They follow the
// Open-Meteo hourly variable names.
const (
	CloudHigh    = "cloudcover_high"
	CloudMid     = "cloudcover_mid"
	CloudLow     = "cloudcover_low"
	Humidity150  = "relativehumidity_150hPa"
	Humidity500  = "relativehumidity_500hPa"
	Humidity1000 = "relativehumidity_1000hPa"
	VisibilityM  = "visibility"
)

// CloudCover aggregates the cloud bands through a nested engine, after
// adjusting band weights and optima for the cover at the target.
type CloudCover struct {
	Params CloudParams
}

func (CloudCover) ID() string { return FamilyCloudCover }
func (CloudCover) quality()   {}

func (c CloudCover) Claims(name string) bool {
	_, ok := c.Params.Weights[name]
	return ok
}

func (c CloudCover) Evaluate(in Input) Result {
	weights := c.Params.Weights.Clone()
	applyPenalties(weights, c.Params.Penalties, in.Series, in.Index)
	optima := shiftOptima(c.Params.Optima, c.Params.Shifts, coverShares(in.Series, in.Index))

	bands := make([]Function, 0, len(weights))
	for _, name := range sortedKeys(weights) {
		if name == c.Params.CurveBand {
			bands = append(bands, HighCloudBand{Name: name, Curve: c.Params.Curve})
			continue
		}
		bands = append(bands, ProximityBand{Name: name, Optimum: optima[name]})
	}
	return nested(FamilyCloudCover, weights, bands, in)
}

// Moisture aggregates relative humidity at several pressure levels.
type Moisture struct {
	Params MoistureParams
}

func (Moisture) ID() string { return FamilyMoisture }
func (Moisture) quality()   {}

func (m Moisture) Claims(name string) bool {
	_, ok := m.Params.Weights[name]
	return ok
}

func (m Moisture) Evaluate(in Input) Result {
	levels := make([]Function, 0, len(m.Params.Weights))
	for _, name := range sortedKeys(m.Params.Weights) {
		levels = append(levels, ProximityBand{Name: name, Optimum: m.Params.Optima[name]})
	}
	return nested(FamilyMoisture, m.Params.Weights.Clone(), levels, in)
}

// Visibility scores the visibility series against a useful maximum distance.
type Visibility struct {
	Params VisibilityParams
}

func (Visibility) ID() string              { return FamilyVisibility }
func (Visibility) Claims(name string) bool { return name == VisibilityM }
func (Visibility) quality()                {}

func (v Visibility) Evaluate(in Input) Result {
	s, ok := findSeries(in.Series, VisibilityM)
	if !ok || v.Params.Ceiling <= 0 {
		return Result{}
	}
	score := s.mean(in.Index, func(sample float64) float64 {
		return clamp(sample/v.Params.Ceiling, 0, 1)
	})
	return weighted(VisibilityM, score, in.Weights[FamilyVisibility], fmt.Sprintf("ceiling %.0fm", v.Params.Ceiling))
}

// nested runs a sorted sub-engine and folds its normalised score into the
// parent's weighting.
func nested(id string, weights WeightMap, fns []Function, in Input) Result {
	sub := NewSorted(weights, fns, in.Series)
	raw, reasons := sub.CalculateAt(in.Index)

	total := sub.TotalPossibleWeight()
	if total <= 0 {
		return Result{Reasoning: reasons}
	}
	return Result{
		Value:     clamp(raw/total, 0, 1) * in.Weights[id],
		Reasoning: reasons,
	}
}

// BandPenalty lowers Target's weight by Proximity(Source, Optimum)/Divisor,
// using the Source sample at the target index.
type BandPenalty struct {
	Target  string  `yaml:"target" json:"target" validate:"required"`
	Source  string  `yaml:"source" json:"source" validate:"required"`
	Optimum float64 `yaml:"optimum" json:"optimum" validate:"gt=0"`
	Divisor float64 `yaml:"divisor" json:"divisor" validate:"gt=0"`
}

// applyPenalties scales weights in place. Each band's multiplier starts at
// 1 and never drops below 0.
func applyPenalties(weights WeightMap, penalties []BandPenalty, series []Series, idx int) {
	mult := make(map[string]float64, len(weights))
	for name := range weights {
		mult[name] = 1
	}
	for _, p := range penalties {
		if _, ok := mult[p.Target]; !ok {
			continue
		}
		src, ok := findSeries(series, p.Source)
		if !ok {
			continue
		}
		mult[p.Target] -= Proximity(src.at(idx), p.Optimum) / p.Divisor
	}
	for name, m := range mult {
		weights[name] *= math.Max(m, 0)
	}
}

// OptimumShift raises Target's optimum when Source holds a small share of
// the total cover: the multiplier grows by max(Offset - share^Exponent, 0)/100,
// with share in percent.
type OptimumShift struct {
	Target   string  `yaml:"target" json:"target" validate:"required"`
	Source   string  `yaml:"source" json:"source" validate:"required"`
	Offset   float64 `yaml:"offset" json:"offset" validate:"gte=0"`
	Exponent float64 `yaml:"exponent" json:"exponent" validate:"gt=0"`
}

func shiftOptima(base map[string]float64, shifts []OptimumShift, shares map[string]float64) map[string]float64 {
	mult := make(map[string]float64, len(base))
	for name := range base {
		mult[name] = 1
	}
	for _, s := range shifts {
		if _, ok := mult[s.Target]; !ok {
			continue
		}
		share, ok := shares[s.Source]
		if !ok {
			continue
		}
		mult[s.Target] += math.Max(s.Offset-math.Pow(share, s.Exponent), 0) / 100
	}

	out := make(map[string]float64, len(base))
	for name, v := range base {
		out[name] = v * mult[name]
	}
	return out
}

// coverShares returns each series' share of the summed window-averaged
// cover, in whole percent.
func coverShares(series []Series, idx int) map[string]float64 {
	avgs := make(map[string]float64, len(series))
	var total float64
	for _, s := range series {
		avg := s.mean(idx, func(v float64) float64 { return v })
		avgs[s.Name] = avg
		total += avg
	}

	shares := make(map[string]float64, len(avgs))
	for name, avg := range avgs {
		if avg == 0 || total == 0 {
			shares[name] = 0
			continue
		}
		shares[name] = math.Round(avg / total * 100)
	}
	return shares
}
