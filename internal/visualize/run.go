// internal/visualize/run.go
package visualize

import (
	"path/filepath"

	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"

	"github.com/mwiater/coldplot/internal/results"
	"github.com/mwiater/coldplot/internal/stats"
)

// Options select what to draw and where. Empty Provider, Memory and
// ServiceTime are inferred from Path. Output defaults to Path; an Output
// directory inside Path is not read as an experiment run.
type Options struct {
	Type        string
	Path        string
	Provider    string
	Memory      string
	ServiceTime string
	Output      string
	Width       vg.Length
	Height      vg.Length
}

// RunSummary describes one experiment run of the rendered figure.
type RunSummary struct {
	Name     string
	Category int
	X        float64
	stats.Summary
}

// Result reports what Run produced.
type Result struct {
	Type   string
	Title  string
	Output string
	Runs   []RunSummary
}

// Run renders the chart selected by opts.Type for the results tree at
// opts.Path. The type is validated before the filesystem is touched.
func Run(opts Options) (Result, error) {
	vis, err := Lookup(opts.Type)
	if err != nil {
		return Result{}, err
	}

	params := InferParams(opts.Path)
	params.Provider = opts.Provider
	if params.Provider == "" {
		if params.Provider, err = InferProvider(opts.Path); err != nil {
			return Result{}, err
		}
	}
	if opts.Memory != "" {
		params.Memory = opts.Memory
	}
	if opts.ServiceTime != "" {
		params.ServiceTime = opts.ServiceTime
	}
	log.Infof("Identified provider is %s", params.Provider)
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("Experiment parameters: %s", pp.Sprint(params))
	}

	dir := opts.Output
	if dir == "" {
		dir = opts.Path
	}
	runs, err := results.Load(opts.Path, vis.Layout(), dir)
	if err != nil {
		return Result{}, err
	}

	fig, err := vis.Figure(runs, params)
	if err != nil {
		return Result{}, errors.Wrapf(err, "building %s figure", vis.Name())
	}
	if opts.Width > 0 {
		fig.Width = opts.Width
	}
	if opts.Height > 0 {
		fig.Height = opts.Height
	}

	res := Result{
		Type:   vis.Name(),
		Title:  fig.Title,
		Output: filepath.Join(dir, FileName(fig.Title)),
	}
	if err := fig.Save(res.Output); err != nil {
		return Result{}, err
	}
	log.Infof("Saved %s chart to %s", vis.Name(), res.Output)

	for _, r := range runs {
		s, err := stats.Summarize(r.Latencies)
		if err != nil {
			return Result{}, errors.Wrapf(err, "summarizing %s", r.Name())
		}
		res.Runs = append(res.Runs, RunSummary{Name: r.Name(), Category: r.Category, X: r.X, Summary: s})
	}
	return res, nil
}
