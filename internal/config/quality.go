package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/horizon/internal/quality"
)

var validate = validator.New()

// DefaultQuality returns the empirically tuned scoring parameters.
func DefaultQuality() quality.Params {
	return quality.Params{
		Weights: quality.WeightMap{
			quality.FamilyMoisture:   120,
			quality.FamilyCloudCover: 85,
			quality.FamilyVisibility: 70,
		},
		Cloud: quality.CloudParams{
			Weights: quality.WeightMap{
				quality.CloudHigh: 120,
				quality.CloudMid:  70,
				quality.CloudLow:  87,
			},
			CurveBand: quality.CloudHigh,
			Curve: quality.HighCloudCurve{
				Threshold:   85,
				LowerVertex: 94.86,
				LowerScale:  1.0 / 90,
				UpperVertex: 90,
				UpperScale:  1,
			},
			Optima: map[string]float64{
				quality.CloudMid: 14,
				quality.CloudLow: 8,
			},
			Penalties: []quality.BandPenalty{
				{Target: quality.CloudHigh, Source: quality.CloudLow, Optimum: 85, Divisor: 1.6},
				{Target: quality.CloudHigh, Source: quality.CloudMid, Optimum: 40, Divisor: 1.75},
				{Target: quality.CloudMid, Source: quality.CloudLow, Optimum: 85, Divisor: 1.7},
			},
			Shifts: []quality.OptimumShift{
				{Target: quality.CloudMid, Source: quality.CloudHigh, Offset: 350, Exponent: 1.42},
				{Target: quality.CloudLow, Source: quality.CloudHigh, Offset: 100, Exponent: 1.6},
				{Target: quality.CloudLow, Source: quality.CloudMid, Offset: 200, Exponent: 1.6},
			},
		},
		Moisture: quality.MoistureParams{
			Weights: quality.WeightMap{
				quality.Humidity150:  110,
				quality.Humidity500:  85,
				quality.Humidity1000: 40,
			},
			Optima: map[string]float64{
				quality.Humidity150:  3,
				quality.Humidity500:  15,
				quality.Humidity1000: 40,
			},
		},
		Visibility: quality.VisibilityParams{
			Ceiling: 16000,
		},
	}
}

// LoadQuality returns the default parameters overlaid with the YAML file at
// path. An empty path yields the defaults. Map entries in the file are merged
// into the defaults; lists replace them.
func LoadQuality(path string) (quality.Params, error) {
	params := DefaultQuality()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return quality.Params{}, fmt.Errorf("read quality config: %w", err)
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			return quality.Params{}, fmt.Errorf("parse quality config: %w", err)
		}
	}

	if err := ValidateQuality(params); err != nil {
		return quality.Params{}, err
	}
	return params, nil
}

// ValidateQuality checks weights, optima and thresholds.
func ValidateQuality(p quality.Params) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid quality config: %w", err)
	}
	return nil
}
