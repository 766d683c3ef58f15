package weather

import (
	"fmt"
	"time"

	"github.com/i474232898/horizon/internal/quality"
)

// EventKind names a sun event.
type EventKind string

const (
	Sunrise EventKind = "sunrise"
	Sunset  EventKind = "sunset"
)

// Location represents a point for which forecasts are planned.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Latitude, l.Longitude)
}

// Daily holds the per-day arrays of a forecast, all UNIX seconds.
type Daily struct {
	Time    []int64 `json:"time"`
	Sunrise []int64 `json:"sunrise"`
	Sunset  []int64 `json:"sunset"`
}

// Validate checks that the daily arrays are present and aligned.
func (d Daily) Validate() error {
	if len(d.Time) == 0 {
		return fmt.Errorf("%w: empty daily time series", quality.ErrInvalidArgument)
	}
	if len(d.Sunrise) != len(d.Time) || len(d.Sunset) != len(d.Time) {
		return fmt.Errorf("%w: daily sunrise/sunset length does not match time axis", quality.ErrInvalidArgument)
	}
	return nil
}

// Forecast is a raw forecast in the shape of Open-Meteo's unixtime response:
// hourly variables keyed by name next to a "time" axis, plus daily sun times.
type Forecast struct {
	Location
	Timezone string               `json:"timezone,omitempty"`
	Hourly   map[string][]float64 `json:"hourly"`
	Daily    Daily                `json:"daily"`
}

// HourlyTimeKey is the hourly entry holding the time axis.
const HourlyTimeKey = "time"

// Bundle converts the hourly section into a quality bundle. The caller's
// slices are shared, not copied; the engine never writes to them.
func (f Forecast) Bundle() quality.Bundle {
	return BundleFromHourly(f.Hourly)
}

// BundleFromHourly splits an hourly map into its time axis and series.
func BundleFromHourly(hourly map[string][]float64) quality.Bundle {
	b := quality.Bundle{Series: make(map[string][]float64, len(hourly))}
	for name, data := range hourly {
		if name == HourlyTimeKey {
			b.Time = make([]int64, len(data))
			for i, ts := range data {
				b.Time[i] = int64(ts)
			}
			continue
		}
		b.Series[name] = data
	}
	return b
}

// Event is one sunrise or sunset.
type Event struct {
	Kind EventKind `json:"type"`
	// Time is the event instant in UNIX seconds.
	Time int64 `json:"time"`
	// Day is the index into the forecast's daily arrays.
	Day  int   `json:"day"`
	Date int64 `json:"date"`
}

// EventForecast is a scored event.
type EventForecast struct {
	Event
	Target  int64            `json:"target"`
	Quality float64          `json:"quality"`
	Factors []quality.Factor `json:"factors,omitempty"`
}

// Plan is the scored outlook for one location at one point in time.
type Plan struct {
	ID        string          `json:"id"`
	Location  Location        `json:"location"`
	CreatedAt time.Time       `json:"createdAt"` // always UTC
	Current   EventForecast   `json:"current"`
	Threshold float64         `json:"threshold"`
	Notify    bool            `json:"notify"`
	Upcoming  []EventForecast `json:"upcoming"`
	Ranked    []EventForecast `json:"ranked"`
}
