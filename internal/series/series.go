// internal/series/series.go
// Package series holds aggregate values keyed by run category and X value.
package series

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"

	"github.com/mwiater/coldplot/internal/results"
	"github.com/mwiater/coldplot/internal/stats"
)

var (
	// ErrDuplicatePoint is returned when two runs share a category and X value.
	ErrDuplicatePoint = errors.New("duplicate point")
	// ErrMissingPoint is returned when a category has no value for an axis entry.
	ErrMissingPoint = errors.New("missing point")
)

// Set maps category -> X -> value. Points are matched by key so a category
// missing a run can never shift its remaining values onto the wrong X.
type Set struct {
	Name   string
	points map[int]map[float64]float64
}

// New returns an empty Set.
func New(name string) *Set {
	return &Set{Name: name, points: map[int]map[float64]float64{}}
}

// Add records value for (category, x).
func (s *Set) Add(category int, x, value float64) error {
	byX, ok := s.points[category]
	if !ok {
		byX = map[float64]float64{}
		s.points[category] = byX
	}
	if _, dup := byX[x]; dup {
		return errors.Wrapf(ErrDuplicatePoint, "%s: category %d at x=%g", s.Name, category, x)
	}
	byX[x] = value
	return nil
}

// Categories returns the categories in ascending order.
func (s *Set) Categories() []int {
	out := make([]int, 0, len(s.points))
	for c := range s.points {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Axis returns the ascending union of X values across all categories.
func (s *Set) Axis() []float64 {
	seen := map[float64]struct{}{}
	var out []float64
	for _, byX := range s.points {
		for x := range byX {
			if _, ok := seen[x]; !ok {
				seen[x] = struct{}{}
				out = append(out, x)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Line returns the values of category along axis. Every axis entry must
// have a value.
func (s *Set) Line(category int, axis []float64) ([]float64, error) {
	byX := s.points[category]
	ys := make([]float64, len(axis))
	for i, x := range axis {
		v, ok := byX[x]
		if !ok {
			return nil, errors.Wrapf(ErrMissingPoint, "%s: category %d has no value at x=%g", s.Name, category, x)
		}
		ys[i] = v
	}
	return ys, nil
}

func (s *Set) String() string {
	return fmt.Sprintf("%s: %d categories over %d x values", s.Name, len(s.points), len(s.Axis()))
}

// Aggregate reduces each run to its nearest-rank q quantile.
func Aggregate(name string, runs []results.Run, q float64) (*Set, error) {
	set := New(name)
	for _, r := range runs {
		v, err := stats.NearestRank(r.Latencies, q)
		if err != nil {
			return nil, errors.Wrapf(err, "run %s", r.Name())
		}
		if err := set.Add(r.Category, r.X, v); err != nil {
			return nil, err
		}
	}
	return set, nil
}
