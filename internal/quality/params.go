package quality

// Params is the full set of tunable weights, optima and thresholds.
// Defaults live in the config package; nothing in this package hard-codes
// a tuning.
type Params struct {
	Weights    WeightMap        `yaml:"weights" json:"weights" validate:"required,dive,gt=0"`
	Cloud      CloudParams      `yaml:"cloudcover" json:"cloudcover"`
	Moisture   MoistureParams   `yaml:"moisture" json:"moisture"`
	Visibility VisibilityParams `yaml:"visibility" json:"visibility"`
}

// CloudParams configures the cloud cover family.
type CloudParams struct {
	// Weights holds one entry per band; the keys are the series names the
	// family claims.
	Weights WeightMap `yaml:"weights" json:"weights" validate:"required,dive,gt=0"`
	// CurveBand is scored with Curve; every other band uses Proximity
	// against its (shifted) entry in Optima.
	CurveBand string             `yaml:"curve_band" json:"curveBand"`
	Curve     HighCloudCurve     `yaml:"high_curve" json:"highCurve"`
	Optima    map[string]float64 `yaml:"optima" json:"optima" validate:"dive,gt=0"`
	Penalties []BandPenalty      `yaml:"penalties" json:"penalties" validate:"dive"`
	Shifts    []OptimumShift     `yaml:"optimum_shifts" json:"optimumShifts" validate:"dive"`
}

// MoistureParams configures the relative humidity family.
type MoistureParams struct {
	Weights WeightMap          `yaml:"weights" json:"weights" validate:"required,dive,gt=0"`
	Optima  map[string]float64 `yaml:"optima" json:"optima" validate:"dive,gt=0"`
}

// VisibilityParams configures the visibility family.
type VisibilityParams struct {
	// Ceiling is the distance in metres beyond which visibility stops
	// improving the score.
	Ceiling float64 `yaml:"ceiling" json:"ceiling" validate:"gt=0"`
}

// Functions returns the top-level family list for p.
func (p Params) Functions() []Function {
	return []Function{
		CloudCover{Params: p.Cloud},
		Moisture{Params: p.Moisture},
		Visibility{Params: p.Visibility},
	}
}
