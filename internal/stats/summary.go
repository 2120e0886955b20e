// internal/stats/summary.go
package stats

import (
	"slices"

	"github.com/montanaflynn/stats"
)

// Summary aggregates one run's latencies for reporting.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64
	P95    float64
}

// Summarize builds a Summary. Mean and StdDev are population statistics.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmpty
	}
	data := stats.Float64Data(values)

	s := Summary{Count: len(values)}
	var err error
	if s.Min, err = data.Min(); err != nil {
		return Summary{}, err
	}
	if s.Max, err = data.Max(); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = data.Mean(); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return Summary{}, err
	}
	if s.Median, err = NearestRank(values, Median); err != nil {
		return Summary{}, err
	}
	if s.P95, err = NearestRank(values, P95); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// ECDF returns the sorted samples and, for each, the fraction of samples
// less than or equal to it. Tied samples share the fraction of the last one.
func ECDF(values []float64) (xs, ys []float64, err error) {
	if len(values) == 0 {
		return nil, nil, ErrEmpty
	}
	xs = slices.Clone(values)
	slices.Sort(xs)
	ys = make([]float64, len(xs))
	n := float64(len(xs))
	for start := 0; start < len(xs); {
		end := start
		for end+1 < len(xs) && xs[end+1] == xs[start] {
			end++
		}
		for i := start; i <= end; i++ {
			ys[i] = float64(end+1) / n
		}
		start = end + 1
	}
	return xs, ys, nil
}
