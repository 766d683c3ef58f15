package quality

import (
	"fmt"

	"github.com/i474232898/horizon/internal/timeindex"
)

var (
	// ErrInvalidArgument marks malformed input. Callers should treat it as
	// fatal for the forecast that produced it.
	ErrInvalidArgument = timeindex.ErrInvalidArgument

	// ErrMismatchedSeries is returned when a series length differs from the
	// length of the bundle's time axis.
	ErrMismatchedSeries = fmt.Errorf("%w: series length does not match time axis", ErrInvalidArgument)

	// ErrEmptyTime is returned for a bundle without timestamps.
	ErrEmptyTime = fmt.Errorf("%w: empty time series", ErrInvalidArgument)
)
