package wind

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Granularity selects the period boundary for temporal aggregation.
type Granularity string

const (
	GranularityAll     Granularity = "all"
	GranularityAnnual  Granularity = "annual"
	GranularityMonthly Granularity = "monthly"
)

// Granularities returns the supported aggregation granularities.
func Granularities() []Granularity {
	return []Granularity{GranularityAll, GranularityAnnual, GranularityMonthly}
}

// QuantileSummary compresses one period of wind speeds into a fixed set of
// quantile cut points plus the arithmetic mean. Values are non-decreasing in
// quantile order.
type QuantileSummary struct {
	Period string     // "all", "2013" or a month abbreviation
	Year   int        // 0 for "all" and monthly periods
	Month  time.Month // 0 except for monthly periods
	Count  int
	Mean   float64
	Probs  []float64 // the cut-point probabilities, ascending
	Values []float64 // wind speed at each cut point
}

// Aggregate partitions the series by the requested period boundary and
// compresses each partition into a QuantileSummary. Calendar boundaries come
// from the samples' own timestamps; no timezone conversion is applied beyond
// what the source data encodes. Annual partitions are calendar years; monthly
// partitions group each calendar month across all years. Partitions with zero
// samples produce no entry.
func Aggregate(samples []Sample, granularity Granularity, quantiles []float64) ([]QuantileSummary, error) {
	if len(samples) == 0 {
		return nil, &EmptySeriesError{Op: "aggregate"}
	}

	switch granularity {
	case GranularityAll:
		return []QuantileSummary{summarize(samples, "all", 0, 0, quantiles)}, nil

	case GranularityAnnual:
		byYear := make(map[int][]Sample)
		for _, s := range samples {
			byYear[s.Time.Year()] = append(byYear[s.Time.Year()], s)
		}

		years := make([]int, 0, len(byYear))
		for y := range byYear {
			years = append(years, y)
		}
		sort.Ints(years)

		out := make([]QuantileSummary, 0, len(years))
		for _, y := range years {
			out = append(out, summarize(byYear[y], fmt.Sprintf("%d", y), y, 0, quantiles))
		}
		return out, nil

	case GranularityMonthly:
		byMonth := make(map[time.Month][]Sample)
		for _, s := range samples {
			byMonth[s.Time.Month()] = append(byMonth[s.Time.Month()], s)
		}

		out := make([]QuantileSummary, 0, len(byMonth))
		for m := time.January; m <= time.December; m++ {
			part, ok := byMonth[m]
			if !ok {
				continue
			}
			out = append(out, summarize(part, monthAbbr(m), 0, m, quantiles))
		}
		return out, nil

	default:
		return nil, &InvalidGranularityError{Granularity: granularity, Valid: Granularities()}
	}
}

func summarize(samples []Sample, period string, year int, month time.Month, quantiles []float64) QuantileSummary {
	speeds := make([]float64, len(samples))
	var sum float64
	for i, s := range samples {
		speeds[i] = s.Speed
		sum += s.Speed
	}
	sort.Float64s(speeds)

	probs := make([]float64, len(quantiles))
	copy(probs, quantiles)

	values := make([]float64, len(probs))
	for i, q := range probs {
		values[i] = quantile(speeds, q)
	}

	return QuantileSummary{
		Period: period,
		Year:   year,
		Month:  month,
		Count:  len(samples),
		Mean:   sum / float64(len(samples)),
		Probs:  probs,
		Values: values,
	}
}

// quantile computes the q-th quantile of sorted values using linear
// interpolation between order statistics: index = q*(n-1), interpolated
// between the floor and ceil positions.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// monthAbbr returns the three-letter month key used in monthly summaries.
func monthAbbr(m time.Month) string {
	return m.String()[:3]
}
