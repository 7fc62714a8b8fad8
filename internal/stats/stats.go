// Package stats computes the descriptive statistics reported for every
// group of sensor readings.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned by Compute when there are no values to summarise.
// Callers are expected to skip empty groups before reaching this package.
var ErrEmpty = errors.New("stats: no values")

// WhiskerRange is the Tukey fence multiplier applied to the interquartile range.
const WhiskerRange = 1.5

// Summary captures the statistics for one group of present values.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
	// Box geometry
	Q1          float64 `json:"q1"`
	Q3          float64 `json:"q3"`
	WhiskerLow  float64 `json:"whisker_low"`
	WhiskerHigh float64 `json:"whisker_high"`

	sorted []float64
}

// Compute summarises values. The standard deviation is the population one
// (divide by N) and all percentiles use linear interpolation between the
// closest order statistics.
func Compute(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmpty
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(sorted, nil)
	s := Summary{
		Count:  len(sorted),
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Median: quantile(sorted, 0.5),
		P10:    quantile(sorted, 0.1),
		P90:    quantile(sorted, 0.9),
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
		sorted: sorted,
	}
	s.WhiskerLow, s.WhiskerHigh = whiskers(sorted, s.Q1, s.Q3)
	return s, nil
}

// Percentile returns the p-th percentile (0..100) of the summarised values.
func (s Summary) Percentile(p float64) float64 {
	if len(s.sorted) == 0 {
		return math.NaN()
	}
	return quantile(s.sorted, p/100)
}

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation. It returns NaN for an empty input.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantile(sorted, p/100)
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// whiskers returns the most extreme values still inside the Tukey fences.
func whiskers(sorted []float64, q1, q3 float64) (lo, hi float64) {
	iqr := q3 - q1
	lowFence := q1 - WhiskerRange*iqr
	highFence := q3 + WhiskerRange*iqr
	lo, hi = sorted[0], sorted[len(sorted)-1]
	for _, v := range sorted {
		if v >= lowFence {
			lo = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			hi = sorted[i]
			break
		}
	}
	return lo, hi
}
