package wind

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// Sample is one timestep of wind data at a single height.
type Sample struct {
	Time      time.Time
	Speed     float64 // m/s
	Direction float64 // degrees, meteorological convention
}

// HeightedSeries holds synchronized time series for one grid point, keyed by
// anchor height. All anchors share the same timestamp index: same length,
// same ordering.
type HeightedSeries struct {
	heights []float64
	series  map[float64][]Sample
}

// NewHeightedSeries creates an empty heighted series.
func NewHeightedSeries() *HeightedSeries {
	return &HeightedSeries{series: make(map[float64][]Sample)}
}

// Add registers the series measured at the given anchor height. Anchors must
// be unique and every anchor's series must share the length of those added
// before it.
func (hs *HeightedSeries) Add(height float64, samples []Sample) error {
	if _, ok := hs.series[height]; ok {
		return fmt.Errorf("anchor height %gm already added", height)
	}
	if len(hs.heights) > 0 && len(samples) != len(hs.series[hs.heights[0]]) {
		return errors.New("all anchor series must share the same timestamp index")
	}

	hs.series[height] = samples
	hs.heights = append(hs.heights, height)
	sort.Float64s(hs.heights)
	return nil
}

// Heights returns the anchor heights in ascending order.
func (hs *HeightedSeries) Heights() []float64 {
	out := make([]float64, len(hs.heights))
	copy(out, hs.heights)
	return out
}

// At returns the series measured at the given anchor height.
func (hs *HeightedSeries) At(height float64) ([]Sample, bool) {
	s, ok := hs.series[height]
	return s, ok
}

// Len returns the number of timesteps per anchor.
func (hs *HeightedSeries) Len() int {
	if len(hs.heights) == 0 {
		return 0
	}
	return len(hs.series[hs.heights[0]])
}

// Interpolate estimates the series at targetHeight using a power-law wind
// profile between the two bracketing anchors:
//
//	v(h) = v(h1) * (h/h1)^alpha
//
// When shear is nil, alpha is derived per sample from the bracketing anchors
// as ln(v2/v1)/ln(h2/h1). A target that exactly matches an anchor returns
// that anchor's series unchanged. Direction is taken from the nearest anchor.
// Targets outside the anchor range fail with HeightOutOfRangeError.
//
// Each timestep is processed independently; there is no smoothing or
// cross-timestep interaction.
func (hs *HeightedSeries) Interpolate(targetHeight float64, shear *float64) ([]Sample, error) {
	if len(hs.heights) == 0 {
		return nil, &EmptySeriesError{Op: "interpolate"}
	}

	// Exact anchor match is a pass-through, not an approximation.
	if anchor, ok := hs.series[targetHeight]; ok {
		out := make([]Sample, len(anchor))
		copy(out, anchor)
		return out, nil
	}

	min, max := hs.heights[0], hs.heights[len(hs.heights)-1]
	if targetHeight < min || targetHeight > max {
		return nil, &HeightOutOfRangeError{Height: targetHeight, Min: min, Max: max}
	}

	// Bracketing anchors: h1 < targetHeight < h2, adjacent in the set.
	var h1, h2 float64
	for i := 0; i < len(hs.heights)-1; i++ {
		if hs.heights[i] < targetHeight && targetHeight < hs.heights[i+1] {
			h1, h2 = hs.heights[i], hs.heights[i+1]
			break
		}
	}

	lower := hs.series[h1]
	upper := hs.series[h2]

	out := make([]Sample, len(lower))
	for i := range lower {
		v1, v2 := lower[i].Speed, upper[i].Speed

		var speed float64
		switch {
		case v1 <= 0 || v2 <= 0:
			// Power law is undefined at calm; fall back to linear.
			frac := (targetHeight - h1) / (h2 - h1)
			speed = v1 + (v2-v1)*frac
		case shear != nil:
			speed = v1 * math.Pow(targetHeight/h1, *shear)
		default:
			alpha := math.Log(v2/v1) / math.Log(h2/h1)
			speed = v1 * math.Pow(targetHeight/h1, alpha)
		}

		direction := lower[i].Direction
		if h2-targetHeight < targetHeight-h1 {
			direction = upper[i].Direction
		}

		out[i] = Sample{Time: lower[i].Time, Speed: speed, Direction: direction}
	}

	return out, nil
}
