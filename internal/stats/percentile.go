// internal/stats/percentile.go
// Package stats computes the order statistics plotted by coldplot.
package stats

import (
	"math"
	"slices"

	"github.com/pkg/errors"
)

// Quantiles plotted for every percentile chart.
const (
	Median = 0.5
	P95    = 0.95
)

var (
	// ErrEmpty is returned when a statistic is requested for no samples.
	ErrEmpty = errors.New("no samples")
	// ErrQuantileRange is returned for quantiles outside [0,1].
	ErrQuantileRange = errors.New("quantile out of range")
)

// NearestRank returns the element at index floor(q*n) of the ascending
// sorted copy of values. There is no interpolation between neighbours.
// q == 1 yields the largest sample.
func NearestRank(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	if math.IsNaN(q) || q < 0 || q > 1 {
		return 0, errors.Wrapf(ErrQuantileRange, "q=%v", q)
	}
	cp := slices.Clone(values)
	slices.Sort(cp)
	idx := int(float64(len(cp)) * q)
	if idx >= len(cp) {
		idx = len(cp) - 1
	}
	return cp[idx], nil
}
