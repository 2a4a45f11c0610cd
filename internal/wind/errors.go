package wind

import (
	"fmt"
	"strings"
)

// OutOfRegionError reports a query location outside a dataset's spatial
// coverage. It is raised before any distance computation so that clearly
// invalid input never produces a misleading "nearest" result.
type OutOfRegionError struct {
	Latitude  float64
	Longitude float64
	Dataset   string
	Bounds    Bounds
}

func (e *OutOfRegionError) Error() string {
	return fmt.Sprintf(
		"location (%.5f, %.5f) is outside %s coverage (lat %.3f..%.3f, lng %.3f..%.3f)",
		e.Latitude, e.Longitude, e.Dataset,
		e.Bounds.MinLat, e.Bounds.MaxLat, e.Bounds.MinLng, e.Bounds.MaxLng,
	)
}

// HeightOutOfRangeError reports a target hub height outside the measured
// anchor range. Extrapolation beyond the anchors is not supported because the
// power-law profile assumption degrades outside it.
type HeightOutOfRangeError struct {
	Height float64
	Min    float64
	Max    float64
}

func (e *HeightOutOfRangeError) Error() string {
	return fmt.Sprintf("height %gm is outside the measured range %gm..%gm", e.Height, e.Min, e.Max)
}

// UnknownTurbineError reports a power-curve lookup for an unregistered key.
type UnknownTurbineError struct {
	Key       string
	Available []string
}

func (e *UnknownTurbineError) Error() string {
	return fmt.Sprintf("unknown turbine %q, available: %s", e.Key, strings.Join(e.Available, ", "))
}

// EmptySeriesError reports an aggregation or estimation requested over zero
// samples. A period with no samples is distinct from a period of calm wind.
type EmptySeriesError struct {
	Op string
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("%s: series contains no samples", e.Op)
}

// InvalidGranularityError reports an unsupported aggregation period.
type InvalidGranularityError struct {
	Granularity Granularity
	Valid       []Granularity
}

func (e *InvalidGranularityError) Error() string {
	valid := make([]string, len(e.Valid))
	for i, g := range e.Valid {
		valid[i] = string(g)
	}
	return fmt.Sprintf("invalid granularity %q, must be one of: %s", e.Granularity, strings.Join(valid, ", "))
}
