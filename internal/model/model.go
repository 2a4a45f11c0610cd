// Package model contains the request and response shapes exchanged between
// the transport layer and the wind service.
package model

// WindspeedRequest contains wind speed query parameters.
type WindspeedRequest struct {
	Model     string  `json:"model"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Height    float64 `json:"height"`
	Period    string  `json:"period"`
}

// ProductionRequest contains energy production query parameters.
type ProductionRequest struct {
	Model      string  `json:"model"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lng"`
	Height     float64 `json:"height"`
	Turbine    string  `json:"turbine"`
	Period     string  `json:"period"`
	LossFactor float64 `json:"losses"`
	Rounding   string  `json:"rounding"`
}

// GridPointsRequest contains nearest-grid-point query parameters.
type GridPointsRequest struct {
	Model     string  `json:"model"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Limit     int     `json:"limit"`
}

// GridLocation is one grid point returned to or received from a client.
type GridLocation struct {
	Index     string  `json:"index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TimeseriesRequest contains parameters for a single-location CSV download.
type TimeseriesRequest struct {
	Model     string  `json:"model"`
	GridIndex string  `json:"gridIndex"`
	Height    float64 `json:"height"`
	Turbine   string  `json:"turbine,omitempty"`
	Years     []int   `json:"years,omitempty"`
}

// TimeseriesBatchRequest contains the body of a batch CSV/ZIP download.
type TimeseriesBatchRequest struct {
	Locations []GridLocation `json:"locations"`
	Height    float64        `json:"height"`
	Turbine   string         `json:"turbine,omitempty"`
	Years     []int          `json:"years,omitempty"`
}

// PeriodWindspeed is one aggregated wind speed entry.
type PeriodWindspeed struct {
	Year      int                `json:"year,omitempty"`
	Month     int                `json:"month,omitempty"`
	Period    string             `json:"period"`
	Mean      float64            `json:"windspeed_avg"`
	Quantiles map[string]float64 `json:"quantiles,omitempty"`
}

// WindspeedResponse carries aggregated wind speed data; exactly one field is
// populated depending on the requested period.
type WindspeedResponse struct {
	GlobalAvg  *float64          `json:"global_avg,omitempty"`
	YearlyAvg  []PeriodWindspeed `json:"yearly_avg,omitempty"`
	MonthlyAvg []PeriodWindspeed `json:"monthly_avg,omitempty"`
}

// ProductionEntry is one period of estimated energy production.
type ProductionEntry struct {
	Year         *int    `json:"year,omitempty"`
	AvgWindSpeed float64 `json:"avg_wind_speed_ms"`
	KWhProduced  float64 `json:"kwh_produced"`
}

// ProductionResponse carries energy production estimates; populated fields
// depend on the requested period.
type ProductionResponse struct {
	EnergyProduction *float64                   `json:"energy_production,omitempty"`
	Summary          map[string]ProductionEntry `json:"summary_avg_energy_production,omitempty"`
	Yearly           map[string]ProductionEntry `json:"yearly_avg_energy_production,omitempty"`
	Monthly          map[string]ProductionEntry `json:"monthly_avg_energy_production,omitempty"`
}

// NearestLocationsResponse lists grid points closest to a query location.
type NearestLocationsResponse struct {
	Locations []GridLocation `json:"locations"`
}

// TurbinesResponse lists the available turbine keys.
type TurbinesResponse struct {
	AvailableTurbines []string `json:"available_turbines"`
}

// GridInfo describes a dataset's spatial coverage and resolution.
type GridInfo struct {
	MinLat             float64 `json:"min_lat"`
	MaxLat             float64 `json:"max_lat"`
	MinLng             float64 `json:"min_long"`
	MaxLng             float64 `json:"max_long"`
	SpatialResolution  string  `json:"spatial_resolution"`
	TemporalResolution string  `json:"temporal_resolution"`
}

// ModelInfoResponse describes one data model's configuration.
type ModelInfoResponse struct {
	Model            string              `json:"model"`
	SupportedPeriods map[string][]string `json:"supported_periods"`
	AvailableYears   []int               `json:"available_years"`
	SampleYears      []int               `json:"sample_years"`
	AvailableHeights []float64           `json:"available_heights"`
	GridInfo         GridInfo            `json:"grid_info"`
	References       []string            `json:"references"`
}
