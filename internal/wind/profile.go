// Package wind implements the WindWatts processing core: grid-point lookup,
// vertical interpolation of wind speed across hub heights, quantile-based
// temporal aggregation and turbine energy-production estimation.
//
// The package is a pure computation library. It performs no I/O and keeps no
// mutable state: callers hand it fully-materialized series and immutable
// reference data (grid sets, power curves, dataset profiles) and get value
// objects back.
package wind

// Bounds is the geographic bounding box of a dataset's spatial coverage.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_long"`
	MaxLng float64 `json:"max_long"`
}

// Contains reports whether the given location falls inside the bounds.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// DatasetProfile describes one reanalysis dataset: its anchor heights,
// spatial coverage, available years and aggregation settings. Profiles are
// built once at startup and passed explicitly into operations, never mutated.
type DatasetProfile struct {
	Name string

	// Heights are the anchor heights (meters) at which raw data is
	// available, in ascending order.
	Heights []float64

	Bounds Bounds

	// Quantiles is the cut-point set used when compressing a series into a
	// QuantileSummary, ascending probabilities in (0, 1).
	Quantiles []float64

	// ShearExponent fixes the power-law alpha for vertical interpolation.
	// When nil, alpha is derived per sample from the bracketing anchors.
	ShearExponent *float64

	// QuantileProduction selects the quantile-midpoint production path for
	// this dataset instead of summing over the full hourly series.
	QuantileProduction bool

	Years       []int
	SampleYears []int

	WindspeedPeriods  []string
	ProductionPeriods []string

	SpatialResolution  string
	TemporalResolution string
	References         []string
}

// DefaultQuantiles is the documented cut-point set used by both datasets.
func DefaultQuantiles() []float64 {
	return []float64{0.05, 0.25, 0.50, 0.75, 0.95}
}

// ERA5 returns the profile for the ERA5 reanalysis grid.
func ERA5() *DatasetProfile {
	return &DatasetProfile{
		Name:    "era5",
		Heights: []float64{30, 40, 50, 60, 80, 100},
		Bounds: Bounds{
			MinLat: 23.402, MaxLat: 51.403,
			MinLng: -137.725, MaxLng: -44.224,
		},
		Quantiles:          DefaultQuantiles(),
		QuantileProduction: true,
		Years:              yearRange(2013, 2023),
		SampleYears:        []int{2020, 2021, 2022, 2023},
		WindspeedPeriods:   []string{"all", "annual"},
		ProductionPeriods:  []string{"all", "summary", "annual", "full"},
		SpatialResolution:  "31 km",
		TemporalResolution: "1 hour",
		References: []string{
			"https://www.ecmwf.int/en/forecasts/dataset/ecmwf-reanalysis-v5",
		},
	}
}

// WTK returns the profile for the WIND Toolkit grid.
func WTK() *DatasetProfile {
	return &DatasetProfile{
		Name:    "wtk",
		Heights: []float64{40, 60, 80, 100, 120, 140, 160, 200},
		Bounds: Bounds{
			MinLat: 7.75129, MaxLat: 78.392685,
			MinLng: -179.99918, MaxLng: 180.0,
		},
		Quantiles:          DefaultQuantiles(),
		Years:              yearRange(2000, 2020),
		SampleYears:        []int{2018, 2019, 2020},
		WindspeedPeriods:   []string{"all", "annual", "monthly"},
		ProductionPeriods:  []string{"all", "summary", "annual", "monthly", "full"},
		SpatialResolution:  "2 km",
		TemporalResolution: "1 hour",
		References: []string{
			"https://www.nrel.gov/grid/wind-toolkit",
		},
	}
}

// HeightRange returns the lowest and highest anchor heights of the profile.
func (p *DatasetProfile) HeightRange() (min, max float64) {
	return p.Heights[0], p.Heights[len(p.Heights)-1]
}

// SupportsWindspeedPeriod reports whether the given aggregation period is
// available for wind speed queries against this dataset.
func (p *DatasetProfile) SupportsWindspeedPeriod(period string) bool {
	return containsString(p.WindspeedPeriods, period)
}

// SupportsProductionPeriod reports whether the given period is available for
// production queries against this dataset.
func (p *DatasetProfile) SupportsProductionPeriod(period string) bool {
	return containsString(p.ProductionPeriods, period)
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func yearRange(from, to int) []int {
	years := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return years
}
