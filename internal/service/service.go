package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/nrel/windwatts-core/internal/model"
	"github.com/nrel/windwatts-core/internal/repository"
	"github.com/nrel/windwatts-core/internal/wind"
)

var (
	ErrUnknownModel      = errors.New("unknown data model, please, check the model name")
	ErrUnsupportedPeriod = errors.New("period is not supported for this model")
	ErrNoDataForLocation = errors.New("unfortunately, there is no wind data available for the nearest grid point")
	ErrInvalidRounding   = errors.New("invalid rounding policy, must be one of: round, floor, none")
)

//go:generate mockgen -source=service.go -destination=mock/mock.go Repository

// Repository provides necessary repo methods.
type Repository interface {
	GetGridPoints(ctx context.Context, model string) ([]wind.GridPoint, error)
	GetHeightedSeries(ctx context.Context, model, gridIndex string, years []int) (*wind.HeightedSeries, error)
}

type dataset struct {
	profile *wind.DatasetProfile
	grid    *wind.GridSet
}

// WindService provides wind resource and energy production estimates. Its
// reference data (grid sets, power curves, dataset profiles) is loaded once
// in New and read-only afterwards, so requests are safe to serve in parallel.
type WindService struct {
	repo     Repository
	registry *wind.Registry
	datasets map[string]*dataset
	workers  int
}

// New creates a new WindService, loading the grid point set of every known
// dataset from the repository.
func New(ctx context.Context, repo Repository, registry *wind.Registry, workers int) (*WindService, error) {
	datasets := make(map[string]*dataset)

	for _, profile := range []*wind.DatasetProfile{wind.ERA5(), wind.WTK()} {
		points, err := repo.GetGridPoints(ctx, profile.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s grid points: %w", profile.Name, err)
		}

		datasets[profile.Name] = &dataset{
			profile: profile,
			grid:    wind.NewGridSet(profile, points),
		}
	}

	if workers < 1 {
		workers = 1
	}

	return &WindService{
		repo:     repo,
		registry: registry,
		datasets: datasets,
		workers:  workers,
	}, nil
}

func (ws *WindService) dataset(name string) (*dataset, error) {
	ds, ok := ws.datasets[name]
	if !ok {
		return nil, ErrUnknownModel
	}
	return ds, nil
}

// interpolatedSeries resolves the nearest grid point and returns its series
// vertically interpolated to the requested hub height.
func (ws *WindService) interpolatedSeries(ctx context.Context, ds *dataset, lat, lng, height float64, years []int) ([]wind.Sample, error) {
	matches, err := ds.grid.Nearest(lat, lng, 1)
	if err != nil {
		return nil, err
	}

	return ws.seriesForGridPoint(ctx, ds, matches[0].Index, height, years)
}

func (ws *WindService) seriesForGridPoint(ctx context.Context, ds *dataset, gridIndex string, height float64, years []int) ([]wind.Sample, error) {
	hs, err := ws.repo.GetHeightedSeries(ctx, ds.profile.Name, gridIndex, years)
	if err == repository.ErrNoWindDataForGridPoint {
		return nil, ErrNoDataForLocation
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wind data: %w", err)
	}

	return hs.Interpolate(height, ds.profile.ShearExponent)
}

// GetWindspeed implements retrieving aggregated wind speed for a location at
// a hub height.
func (ws *WindService) GetWindspeed(ctx context.Context, req *model.WindspeedRequest) (*model.WindspeedResponse, error) {
	ds, err := ws.dataset(req.Model)
	if err != nil {
		return nil, err
	}

	if !ds.profile.SupportsWindspeedPeriod(req.Period) {
		return nil, ErrUnsupportedPeriod
	}

	series, err := ws.interpolatedSeries(ctx, ds, req.Latitude, req.Longitude, req.Height, nil)
	if err != nil {
		return nil, err
	}

	summaries, err := wind.Aggregate(series, wind.Granularity(req.Period), ds.profile.Quantiles)
	if err != nil {
		return nil, err
	}

	resp := &model.WindspeedResponse{}
	switch wind.Granularity(req.Period) {
	case wind.GranularityAll:
		mean := round2(summaries[0].Mean)
		resp.GlobalAvg = &mean
	case wind.GranularityAnnual:
		resp.YearlyAvg = toPeriodWindspeeds(summaries)
	case wind.GranularityMonthly:
		resp.MonthlyAvg = toPeriodWindspeeds(summaries)
	}

	return resp, nil
}

func toPeriodWindspeeds(summaries []wind.QuantileSummary) []model.PeriodWindspeed {
	out := make([]model.PeriodWindspeed, 0, len(summaries))
	for _, sum := range summaries {
		quantiles := make(map[string]float64, len(sum.Probs))
		for i, q := range sum.Probs {
			quantiles[fmt.Sprintf("p%02.0f", q*100)] = round2(sum.Values[i])
		}

		out = append(out, model.PeriodWindspeed{
			Year:      sum.Year,
			Month:     int(sum.Month),
			Period:    sum.Period,
			Mean:      round2(sum.Mean),
			Quantiles: quantiles,
		})
	}
	return out
}

// GetProduction implements retrieving energy production estimates for a
// location, hub height and turbine.
func (ws *WindService) GetProduction(ctx context.Context, req *model.ProductionRequest) (*model.ProductionResponse, error) {
	ds, err := ws.dataset(req.Model)
	if err != nil {
		return nil, err
	}

	if !ds.profile.SupportsProductionPeriod(req.Period) {
		return nil, ErrUnsupportedPeriod
	}

	policy := wind.RoundingPolicy(req.Rounding)
	if req.Rounding == "" {
		policy = wind.RoundNearest
	}
	if !wind.ValidRoundingPolicy(policy) {
		return nil, ErrInvalidRounding
	}

	curve, err := ws.registry.Get(req.Turbine)
	if err != nil {
		return nil, err
	}

	series, err := ws.interpolatedSeries(ctx, ds, req.Latitude, req.Longitude, req.Height, nil)
	if err != nil {
		return nil, err
	}

	annual, err := ws.annualEstimates(ds, series, curve, req.LossFactor, policy)
	if err != nil {
		return nil, err
	}

	resp := &model.ProductionResponse{}

	switch req.Period {
	case "all":
		summary, err := wind.SummarizeAnnual(annual, policy)
		if err != nil {
			return nil, err
		}
		resp.EnergyProduction = &summary.Average.EnergyKWh

	case "summary":
		summary, err := wind.SummarizeAnnual(annual, policy)
		if err != nil {
			return nil, err
		}
		resp.Summary = toSummaryMap(summary)

	case "annual":
		resp.Yearly = toYearlyMap(annual)

	case "monthly":
		monthly, err := wind.MonthlyEstimates(series, curve, req.LossFactor, policy)
		if err != nil {
			return nil, err
		}
		resp.Monthly = toMonthlyMap(monthly)

	case "full":
		summary, err := wind.SummarizeAnnual(annual, policy)
		if err != nil {
			return nil, err
		}
		resp.EnergyProduction = &summary.Average.EnergyKWh
		resp.Summary = toSummaryMap(summary)
		resp.Yearly = toYearlyMap(annual)

		if ds.profile.SupportsProductionPeriod("monthly") {
			monthly, err := wind.MonthlyEstimates(series, curve, req.LossFactor, policy)
			if err != nil {
				return nil, err
			}
			resp.Monthly = toMonthlyMap(monthly)
		}
	}

	return resp, nil
}

// annualEstimates follows the dataset's production path: quantile-midpoint
// integration over annual summaries, or a direct sum over the hourly series.
func (ws *WindService) annualEstimates(ds *dataset, series []wind.Sample, curve *wind.PowerCurve, lossFactor float64, policy wind.RoundingPolicy) ([]wind.ProductionEstimate, error) {
	if ds.profile.QuantileProduction {
		summaries, err := wind.Aggregate(series, wind.GranularityAnnual, ds.profile.Quantiles)
		if err != nil {
			return nil, err
		}
		return wind.AnnualEstimatesFromSummaries(summaries, curve, lossFactor, policy)
	}

	return wind.AnnualEstimates(series, curve, lossFactor, policy)
}

func toEntry(est wind.ProductionEstimate, withYear bool) model.ProductionEntry {
	entry := model.ProductionEntry{
		AvgWindSpeed: round2(est.MeanWindSpeed),
		KWhProduced:  est.EnergyKWh,
	}
	if withYear && est.Year != 0 {
		year := est.Year
		entry.Year = &year
	}
	return entry
}

func toSummaryMap(summary wind.ProductionSummary) map[string]model.ProductionEntry {
	return map[string]model.ProductionEntry{
		"Lowest year":  toEntry(summary.Lowest, true),
		"Average year": toEntry(summary.Average, false),
		"Highest year": toEntry(summary.Highest, true),
	}
}

func toYearlyMap(annual []wind.ProductionEstimate) map[string]model.ProductionEntry {
	out := make(map[string]model.ProductionEntry, len(annual))
	for _, est := range annual {
		out[strconv.Itoa(est.Year)] = toEntry(est, false)
	}
	return out
}

func toMonthlyMap(monthly []wind.ProductionEstimate) map[string]model.ProductionEntry {
	out := make(map[string]model.ProductionEntry, len(monthly))
	for _, est := range monthly {
		out[est.Period] = toEntry(est, false)
	}
	return out
}

// GetGridPoints finds the nearest grid points to a location.
func (ws *WindService) GetGridPoints(ctx context.Context, req *model.GridPointsRequest) ([]model.GridLocation, error) {
	ds, err := ws.dataset(req.Model)
	if err != nil {
		return nil, err
	}

	matches, err := ds.grid.Nearest(req.Latitude, req.Longitude, req.Limit)
	if err != nil {
		return nil, err
	}

	locations := make([]model.GridLocation, 0, len(matches))
	for _, m := range matches {
		locations = append(locations, model.GridLocation{
			Index:     m.Index,
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		})
	}

	return locations, nil
}

// GetTurbines lists the available turbine keys.
func (ws *WindService) GetTurbines() []string {
	return ws.registry.Names()
}

// GetModelInfo returns the configuration of a data model.
func (ws *WindService) GetModelInfo(modelName string) (*model.ModelInfoResponse, error) {
	ds, err := ws.dataset(modelName)
	if err != nil {
		return nil, err
	}

	p := ds.profile
	return &model.ModelInfoResponse{
		Model: p.Name,
		SupportedPeriods: map[string][]string{
			"windspeed":  p.WindspeedPeriods,
			"production": p.ProductionPeriods,
		},
		AvailableYears:   p.Years,
		SampleYears:      p.SampleYears,
		AvailableHeights: p.Heights,
		GridInfo: model.GridInfo{
			MinLat:             p.Bounds.MinLat,
			MaxLat:             p.Bounds.MaxLat,
			MinLng:             p.Bounds.MinLng,
			MaxLng:             p.Bounds.MaxLng,
			SpatialResolution:  p.SpatialResolution,
			TemporalResolution: p.TemporalResolution,
		},
		References: p.References,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
