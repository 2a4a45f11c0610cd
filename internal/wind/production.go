package wind

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// HoursPerYear is the period duration used when a quantile summary stands in
// for a full year of hourly samples.
const HoursPerYear = 8760.0

// RoundingPolicy controls how final kWh figures are reported.
type RoundingPolicy string

const (
	// RoundNearest rounds the adjusted energy to the nearest whole kWh.
	RoundNearest RoundingPolicy = "round"
	// RoundFloor floors the adjusted energy to the nearest whole kWh.
	RoundFloor RoundingPolicy = "floor"
	// RoundNone reports the adjusted energy unchanged.
	RoundNone RoundingPolicy = "none"
)

// ValidRoundingPolicy reports whether p is a supported policy.
func ValidRoundingPolicy(p RoundingPolicy) bool {
	return p == RoundNearest || p == RoundFloor || p == RoundNone
}

func (p RoundingPolicy) apply(kwh float64) float64 {
	switch p {
	case RoundFloor:
		return math.Floor(kwh)
	case RoundNone:
		return kwh
	default:
		return math.Round(kwh)
	}
}

// ProductionEstimate is the expected energy production for one period.
type ProductionEstimate struct {
	Period        string
	Year          int        // 0 when the period is not a calendar year
	Month         time.Month // 0 unless the period is a calendar month
	MeanWindSpeed float64    // m/s, from the source wind-speed distribution
	EnergyKWh     float64
}

// ProductionSummary is the lowest/average/highest-year breakdown over a set
// of annual estimates.
type ProductionSummary struct {
	Lowest  ProductionEstimate
	Average ProductionEstimate
	Highest ProductionEstimate
}

func validateLossFactor(lossFactor float64) error {
	if lossFactor < 0 || lossFactor >= 1 {
		return fmt.Errorf("loss factor %g must be in [0, 1)", lossFactor)
	}
	return nil
}

// EstimateFromSummary approximates expected energy over a period of the given
// duration from a quantile summary. The power curve is evaluated at the
// midpoints of adjacent quantile cut points and the midpoint powers are
// weighted by the probability mass between their bracketing quantiles, which
// numerically integrates power over the empirical CDF. The raw energy is then
// de-rated by (1 - lossFactor) and the rounding policy applied.
func EstimateFromSummary(sum QuantileSummary, curve *PowerCurve, hours, lossFactor float64, policy RoundingPolicy) (ProductionEstimate, error) {
	if err := validateLossFactor(lossFactor); err != nil {
		return ProductionEstimate{}, err
	}
	if len(sum.Values) < 2 {
		return ProductionEstimate{}, errors.New("quantile summary needs at least two cut points")
	}

	var weighted, mass float64
	for i := 0; i < len(sum.Values)-1; i++ {
		mid := (sum.Values[i] + sum.Values[i+1]) / 2
		w := sum.Probs[i+1] - sum.Probs[i]
		weighted += curve.PowerAt(mid) * w
		mass += w
	}
	avgPowerKw := weighted / mass

	kwh := avgPowerKw * hours * (1 - lossFactor)

	return ProductionEstimate{
		Period:        sum.Period,
		Year:          sum.Year,
		Month:         sum.Month,
		MeanWindSpeed: sum.Mean,
		EnergyKWh:     policy.apply(kwh),
	}, nil
}

// EstimateFromSeries computes energy over a full hourly series by evaluating
// the power curve per timestep and summing: each sample contributes its
// instantaneous kW over one hour. More accurate than the quantile path, used
// where per-timestep resolution is retained.
func EstimateFromSeries(samples []Sample, curve *PowerCurve, lossFactor float64, policy RoundingPolicy) (ProductionEstimate, error) {
	if err := validateLossFactor(lossFactor); err != nil {
		return ProductionEstimate{}, err
	}
	if len(samples) == 0 {
		return ProductionEstimate{}, &EmptySeriesError{Op: "estimate"}
	}

	var kwh, speedSum float64
	for _, s := range samples {
		kwh += curve.PowerAt(s.Speed)
		speedSum += s.Speed
	}
	kwh *= 1 - lossFactor

	return ProductionEstimate{
		Period:        "all",
		MeanWindSpeed: speedSum / float64(len(samples)),
		EnergyKWh:     policy.apply(kwh),
	}, nil
}

// AnnualEstimates groups the series by calendar year and estimates production
// for each year, ascending. Years with zero samples produce no entry.
func AnnualEstimates(samples []Sample, curve *PowerCurve, lossFactor float64, policy RoundingPolicy) ([]ProductionEstimate, error) {
	if err := validateLossFactor(lossFactor); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, &EmptySeriesError{Op: "estimate"}
	}

	byYear := make(map[int][]Sample)
	for _, s := range samples {
		byYear[s.Time.Year()] = append(byYear[s.Time.Year()], s)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]ProductionEstimate, 0, len(years))
	for _, y := range years {
		est, err := EstimateFromSeries(byYear[y], curve, lossFactor, policy)
		if err != nil {
			return nil, err
		}
		est.Period = fmt.Sprintf("%d", y)
		est.Year = y
		out = append(out, est)
	}
	return out, nil
}

// AnnualEstimatesFromSummaries estimates production per year from annual
// quantile summaries, each standing in for a full year of hours.
func AnnualEstimatesFromSummaries(summaries []QuantileSummary, curve *PowerCurve, lossFactor float64, policy RoundingPolicy) ([]ProductionEstimate, error) {
	if len(summaries) == 0 {
		return nil, &EmptySeriesError{Op: "estimate"}
	}

	out := make([]ProductionEstimate, 0, len(summaries))
	for _, sum := range summaries {
		est, err := EstimateFromSummary(sum, curve, HoursPerYear, lossFactor, policy)
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// MonthlyEstimates groups the series by calendar month across all observed
// years and reports, per month, the mean wind speed and the energy of an
// average occurrence of that month (total kWh divided by the number of
// distinct years present). Months with zero samples produce no entry.
func MonthlyEstimates(samples []Sample, curve *PowerCurve, lossFactor float64, policy RoundingPolicy) ([]ProductionEstimate, error) {
	if err := validateLossFactor(lossFactor); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, &EmptySeriesError{Op: "estimate"}
	}

	byMonth := make(map[time.Month][]Sample)
	years := make(map[int]struct{})
	for _, s := range samples {
		byMonth[s.Time.Month()] = append(byMonth[s.Time.Month()], s)
		years[s.Time.Year()] = struct{}{}
	}
	nYears := float64(len(years))

	out := make([]ProductionEstimate, 0, len(byMonth))
	for m := time.January; m <= time.December; m++ {
		part, ok := byMonth[m]
		if !ok {
			continue
		}

		var kwh, speedSum float64
		for _, s := range part {
			kwh += curve.PowerAt(s.Speed)
			speedSum += s.Speed
		}
		kwh *= (1 - lossFactor) / nYears

		out = append(out, ProductionEstimate{
			Period:        monthAbbr(m),
			Month:         m,
			MeanWindSpeed: speedSum / float64(len(part)),
			EnergyKWh:     policy.apply(kwh),
		})
	}
	return out, nil
}

// SummarizeAnnual reduces a set of annual estimates to the lowest, average
// and highest year. Selection is by energy produced; ties resolve to the
// earliest year. The average entry carries no year.
func SummarizeAnnual(estimates []ProductionEstimate, policy RoundingPolicy) (ProductionSummary, error) {
	if len(estimates) == 0 {
		return ProductionSummary{}, &EmptySeriesError{Op: "summarize"}
	}

	// Estimates arrive sorted by year, so strict comparisons keep the
	// earliest year on ties.
	lowest, highest := estimates[0], estimates[0]
	var energySum, speedSum float64
	for _, est := range estimates {
		if est.EnergyKWh < lowest.EnergyKWh {
			lowest = est
		}
		if est.EnergyKWh > highest.EnergyKWh {
			highest = est
		}
		energySum += est.EnergyKWh
		speedSum += est.MeanWindSpeed
	}

	n := float64(len(estimates))
	average := ProductionEstimate{
		Period:        "average",
		MeanWindSpeed: speedSum / n,
		EnergyKWh:     policy.apply(energySum / n),
	}

	return ProductionSummary{Lowest: lowest, Average: average, Highest: highest}, nil
}
