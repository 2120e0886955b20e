// internal/visualize/visualization.go
// Package visualize turns a results tree into one chart: it picks the
// visualization type, infers the experiment parameters and drives the
// load, aggregate and render steps.
package visualize

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"

	"github.com/mwiater/coldplot/internal/render"
	"github.com/mwiater/coldplot/internal/results"
	"github.com/mwiater/coldplot/internal/series"
	"github.com/mwiater/coldplot/internal/stats"
)

// ErrUnknownType is returned for an unsupported visualization type.
var ErrUnknownType = errors.New("unsupported visualization type")

const latencyLabel = "Latency (ms)"

// Visualization is one kind of chart coldplot can draw.
type Visualization interface {
	Name() string
	Description() string
	Layout() results.Layout
	Title(p Params) string
	Figure(runs []results.Run, p Params) (render.Figure, error)
}

// percentileChart plots the median and 95th percentile of every category
// against the run's X value, one panel per quantile.
type percentileChart struct {
	name        string
	description string
	layout      results.Layout
	xLabel      string
	legend      string
	title       func(Params) string
}

// cdfChart plots one empirical latency CDF per category.
type cdfChart struct {
	name        string
	description string
	layout      results.Layout
	legend      string
	title       func(Params) string
}

var (
	cpuStats = &percentileChart{
		name:        "cpustats",
		description: "Latency percentiles by allocated memory, one line per service time",
		layout:      results.CPUStatsLayout,
		xLabel:      "Allocated Memory (MB)",
		legend:      "%dms (service time)",
		title: func(p Params) string {
			return p.Provider + " CPU Stats (Memory vs Service Time)"
		},
	}
	transfer = &percentileChart{
		name:        "transfer",
		description: "Latency percentiles by payload size, one line per chain length",
		layout:      results.TransferLayout,
		xLabel:      "Payload Size (KB)",
		legend:      "%d (chain length)",
		title: func(p Params) string {
			return withDetails(p.Provider+" Data Transfers", p.TransferMode)
		},
	}
	burstiness = &cdfChart{
		name:        "burstiness",
		description: "Empirical latency CDFs, one line per burst size",
		layout:      results.BurstinessLayout,
		legend:      "%d (burst size)",
		title: func(p Params) string {
			return p.Provider + " Burstiness CDFs"
		},
	}
	imageSize = &percentileChart{
		name:        "imgsize",
		description: "Cold start latency percentiles by image size, one line per burst size",
		layout:      results.ImageSizeLayout,
		xLabel:      "Image Size (MB)",
		legend:      "%d (burst size)",
		title: func(p Params) string {
			var details []string
			if p.ServiceTime != "" {
				details = append(details, "Service Time "+p.ServiceTime)
			}
			if p.Memory != "" {
				details = append(details, "Memory "+p.Memory+"MB")
			}
			return withDetails(p.Provider+" Cold Starts", details...)
		},
	}
)

// Types lists every supported visualization.
func Types() []Visualization {
	return []Visualization{cpuStats, transfer, burstiness, imageSize}
}

// Lookup returns the visualization registered under name.
func Lookup(name string) (Visualization, error) {
	switch name {
	case "cpustats":
		return cpuStats, nil
	case "transfer":
		return transfer, nil
	case "burstiness":
		return burstiness, nil
	case "imgsize":
		return imageSize, nil
	default:
		return nil, errors.Wrapf(ErrUnknownType, "%q", name)
	}
}

// withDetails appends the non-empty details in parentheses.
func withDetails(title string, details ...string) string {
	var known []string
	for _, d := range details {
		if d != "" {
			known = append(known, d)
		}
	}
	if len(known) == 0 {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, strings.Join(known, ", "))
}

func (c *percentileChart) Name() string { return c.name }
func (c *percentileChart) Description() string { return c.description }
func (c *percentileChart) Layout() results.Layout { return c.layout }
func (c *percentileChart) Title(p Params) string { return c.title(p) }
func (c *cdfChart) Name() string { return c.name }
func (c *cdfChart) Description() string { return c.description }
func (c *cdfChart) Layout() results.Layout { return c.layout }
func (c *cdfChart) Title(p Params) string { return c.title(p) }

func (c *percentileChart) Figure(runs []results.Run, p Params) (render.Figure, error) {
	fig := render.Figure{Title: c.Title(p), ShareY: true}
	for _, q := range []struct {
		title string
		q     float64
	}{
		{"95% percentile", stats.P95},
		{"Median (50% percentile)", stats.Median},
	} {
		set, err := series.Aggregate(q.title, runs, q.q)
		if err != nil {
			return render.Figure{}, err
		}
		panel, err := c.panel(set)
		if err != nil {
			return render.Figure{}, err
		}
		fig.Panels = append(fig.Panels, panel)
	}
	return fig, nil
}

func (c *percentileChart) panel(set *series.Set) (render.Panel, error) {
	axis := set.Axis()
	panel := render.Panel{
		Title:  set.Name,
		XLabel: c.xLabel,
		YLabel: latencyLabel,
		Axis:   axis,
	}
	for _, category := range set.Categories() {
		ys, err := set.Line(category, axis)
		if err != nil {
			return render.Panel{}, err
		}
		panel.Lines = append(panel.Lines, render.Line{
			Label:    fmt.Sprintf(c.legend, category),
			X:        axis,
			Y:        ys,
			Points:   true,
			Annotate: true,
		})
	}
	return panel, nil
}

func (c *cdfChart) Figure(runs []results.Run, p Params) (render.Figure, error) {
	panel := render.Panel{
		Title:  "Latency CDF",
		XLabel: latencyLabel,
		YLabel: "Portion of requests",
	}
	seen := map[int]bool{}
	for _, r := range runs {
		if seen[r.Category] {
			return render.Figure{}, errors.Wrapf(series.ErrDuplicatePoint, "burst size %d appears in more than one run", r.Category)
		}
		seen[r.Category] = true

		xs, ys, err := stats.ECDF(r.Latencies)
		if err != nil {
			return render.Figure{}, errors.Wrapf(err, "run %s", r.Name())
		}
		panel.Lines = append(panel.Lines, render.Line{
			Label: fmt.Sprintf(c.legend, r.Category),
			X:     xs,
			Y:     ys,
		})
	}
	return render.Figure{
		Title:  c.Title(p),
		Width:  6 * vg.Inch,
		Height: render.DefaultHeight,
		Panels: []render.Panel{panel},
	}, nil
}
