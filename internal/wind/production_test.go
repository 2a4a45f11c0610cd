package wind

import (
	"testing"
	"time"

	"github.com/tj/assert"
)

func flatCurve(t *testing.T) *PowerCurve {
	t.Helper()

	// 50 kW at any speed between 1 and 30 m/s.
	curve, err := NewPowerCurve("flat-50kW", []CurvePoint{{1, 50}, {30, 50}})
	assert.Nil(t, err)
	return curve
}

func TestEstimateFromSeries(t *testing.T) {
	curve := testCurve(t)
	samples := hourlySamples(2020, time.January, 12, 12, 12, 12)

	est, err := EstimateFromSeries(samples, curve, 0, RoundNone)
	assert.Nil(t, err)

	// 4 hours at rated 100 kW.
	assert.Equal(t, 400.0, est.EnergyKWh)
	assert.Equal(t, 12.0, est.MeanWindSpeed)
}

func TestEstimateLossFactorLaw(t *testing.T) {
	curve := testCurve(t)
	samples := hourlySamples(2020, time.January, 12, 12, 12, 12)

	raw, err := EstimateFromSeries(samples, curve, 0, RoundNone)
	assert.Nil(t, err)

	adjusted, err := EstimateFromSeries(samples, curve, 0.15, RoundNone)
	assert.Nil(t, err)
	assert.InDelta(t, raw.EnergyKWh*0.85, adjusted.EnergyKWh, 1e-9)
}

func TestEstimateRoundingPolicies(t *testing.T) {
	curve := testCurve(t)
	samples := hourlySamples(2020, time.January, 12)

	floored, err := EstimateFromSeries(samples, curve, 0.151, RoundFloor)
	assert.Nil(t, err)
	assert.Equal(t, 84.0, floored.EnergyKWh)

	rounded, err := EstimateFromSeries(samples, curve, 0.151, RoundNearest)
	assert.Nil(t, err)
	assert.Equal(t, 85.0, rounded.EnergyKWh)

	raw, err := EstimateFromSeries(samples, curve, 0.151, RoundNone)
	assert.Nil(t, err)
	assert.InDelta(t, 84.9, raw.EnergyKWh, 1e-9)
}

func TestEstimateInvalidLossFactor(t *testing.T) {
	curve := testCurve(t)
	samples := hourlySamples(2020, time.January, 12)

	_, err := EstimateFromSeries(samples, curve, 1.0, RoundNone)
	assert.Error(t, err)

	_, err = EstimateFromSeries(samples, curve, -0.1, RoundNone)
	assert.Error(t, err)
}

func TestEstimateFromSeriesEmpty(t *testing.T) {
	curve := testCurve(t)

	_, err := EstimateFromSeries(nil, curve, 0, RoundNone)
	assert.Error(t, err)

	_, ok := err.(*EmptySeriesError)
	assert.True(t, ok)
}

func TestEstimateFromSummary(t *testing.T) {
	curve := flatCurve(t)

	sum := QuantileSummary{
		Period: "2020",
		Year:   2020,
		Mean:   6,
		Probs:  DefaultQuantiles(),
		Values: []float64{2, 4, 6, 8, 10},
	}

	est, err := EstimateFromSummary(sum, curve, HoursPerYear, 0, RoundNone)
	assert.Nil(t, err)

	// Every midpoint sits on the 50 kW plateau.
	assert.InDelta(t, 50*HoursPerYear, est.EnergyKWh, 1e-6)
	assert.Equal(t, 2020, est.Year)
}

func TestEstimateFromSummaryWeightsByProbabilityMass(t *testing.T) {
	// Step curve: 0 kW below 6 m/s, 100 kW from 6 m/s on.
	curve, err := NewPowerCurve("step", []CurvePoint{{5.99, 0}, {6, 100}, {30, 100}})
	assert.Nil(t, err)

	sum := QuantileSummary{
		Period: "all",
		Probs:  DefaultQuantiles(),
		Values: []float64{2, 4, 6, 8, 10},
	}

	est, err := EstimateFromSummary(sum, curve, 1, 0, RoundNone)
	assert.Nil(t, err)

	// Midpoints 3, 5, 7, 9 with masses 0.2, 0.25, 0.25, 0.2: only the two
	// upper midpoints produce power -> 100 * 0.45/0.9 = 50 kW average.
	assert.InDelta(t, 50, est.EnergyKWh, 1e-9)
}

func TestAnnualEstimates(t *testing.T) {
	curve := flatCurve(t)
	samples := append(
		hourlySamples(2020, time.June, 5, 5, 5),
		hourlySamples(2019, time.June, 4, 4)...,
	)

	annual, err := AnnualEstimates(samples, curve, 0, RoundNone)
	assert.Nil(t, err)
	assert.Len(t, annual, 2)

	assert.Equal(t, 2019, annual[0].Year)
	assert.Equal(t, 100.0, annual[0].EnergyKWh)
	assert.Equal(t, 2020, annual[1].Year)
	assert.Equal(t, 150.0, annual[1].EnergyKWh)
}

func TestSummarizeAnnual(t *testing.T) {
	estimates := []ProductionEstimate{
		{Period: "2019", Year: 2019, MeanWindSpeed: 5, EnergyKWh: 200},
		{Period: "2020", Year: 2020, MeanWindSpeed: 6, EnergyKWh: 300},
		{Period: "2021", Year: 2021, MeanWindSpeed: 4, EnergyKWh: 100},
	}

	sum, err := SummarizeAnnual(estimates, RoundNone)
	assert.Nil(t, err)

	assert.Equal(t, 2021, sum.Lowest.Year)
	assert.Equal(t, 2020, sum.Highest.Year)
	assert.Equal(t, 0, sum.Average.Year)
	assert.Equal(t, 200.0, sum.Average.EnergyKWh)
	assert.Equal(t, 5.0, sum.Average.MeanWindSpeed)
}

func TestSummarizeAnnualTiesPickEarliestYear(t *testing.T) {
	estimates := []ProductionEstimate{
		{Period: "2019", Year: 2019, EnergyKWh: 100},
		{Period: "2020", Year: 2020, EnergyKWh: 100},
	}

	sum, err := SummarizeAnnual(estimates, RoundNone)
	assert.Nil(t, err)
	assert.Equal(t, 2019, sum.Lowest.Year)
	assert.Equal(t, 2019, sum.Highest.Year)
}

func TestMonthlyEstimatesAveragedAcrossYears(t *testing.T) {
	curve := flatCurve(t)

	// Two Januaries from different years, 2 hours each.
	samples := append(
		hourlySamples(2019, time.January, 5, 5),
		hourlySamples(2020, time.January, 7, 7)...,
	)

	monthly, err := MonthlyEstimates(samples, curve, 0, RoundNone)
	assert.Nil(t, err)
	assert.Len(t, monthly, 1)

	// 4 hours at 50 kW over 2 years -> 100 kWh per average January.
	assert.Equal(t, "Jan", monthly[0].Period)
	assert.Equal(t, 100.0, monthly[0].EnergyKWh)
	assert.Equal(t, 6.0, monthly[0].MeanWindSpeed)
}

func TestAnnualEstimatesFromSummaries(t *testing.T) {
	curve := flatCurve(t)

	summaries := []QuantileSummary{
		{Period: "2021", Year: 2021, Mean: 7, Probs: DefaultQuantiles(), Values: []float64{3, 5, 7, 9, 11}},
		{Period: "2020", Year: 2020, Mean: 6, Probs: DefaultQuantiles(), Values: []float64{2, 4, 6, 8, 10}},
	}

	annual, err := AnnualEstimatesFromSummaries(summaries, curve, 0, RoundNearest)
	assert.Nil(t, err)
	assert.Len(t, annual, 2)

	// Sorted by year regardless of input order.
	assert.Equal(t, 2020, annual[0].Year)
	assert.Equal(t, 2021, annual[1].Year)
	assert.Equal(t, float64(50*8760), annual[0].EnergyKWh)
}
