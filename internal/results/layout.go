// internal/results/layout.go
// Package results discovers experiment runs in a results tree and reads
// their latency samples.
package results

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// LatenciesFile is the per-run CSV written by the benchmarking client.
	LatenciesFile = "latencies.csv"
	// ClientLatencyColumn holds the end-to-end latency seen by the client.
	ClientLatencyColumn = "Client Latency (ms)"
)

// ErrUnrecognizedRun is returned when a leaf directory name does not follow
// the layout's naming scheme.
var ErrUnrecognizedRun = errors.New("unrecognized experiment directory")

// Layout describes how a kind of experiment encodes its parameters in leaf
// directory names. Pattern must be anchored and expose a "category"
// submatch; an "x" submatch is optional.
type Layout struct {
	Name    string
	Pattern *regexp.Regexp
	Column  string
}

// Run is one experiment run, i.e. one leaf directory.
type Run struct {
	Dir       string
	Category  int
	X         float64
	Latencies []float64
}

// Name is the leaf directory's base name.
func (r Run) Name() string {
	return filepath.Base(r.Dir)
}

func (r Run) String() string {
	return fmt.Sprintf("%s (category=%d x=%g n=%d)", r.Name(), r.Category, r.X, len(r.Latencies))
}

// Layouts for the supported experiment kinds.
var (
	ImageSizeLayout = Layout{
		Name:    "imgsize",
		Pattern: regexp.MustCompile(`^size(?P<category>\d+)-img(?P<x>\d+(?:\.\d+)?)mb$`),
		Column:  ClientLatencyColumn,
	}
	TransferLayout = Layout{
		Name:    "transfer",
		Pattern: regexp.MustCompile(`^chain(?P<category>\d+)-payload(?P<x>\d+(?:\.\d+)?)kb$`),
		Column:  ClientLatencyColumn,
	}
	CPUStatsLayout = Layout{
		Name:    "cpustats",
		Pattern: regexp.MustCompile(`^st(?P<category>\d+)ms-mem(?P<x>\d+(?:\.\d+)?)mb$`),
		Column:  ClientLatencyColumn,
	}
	BurstinessLayout = Layout{
		Name:    "burstiness",
		Pattern: regexp.MustCompile(`^size(?P<category>\d+)(?:-.*)?$`),
		Column:  ClientLatencyColumn,
	}
)

// Parse recovers the run descriptor from a leaf directory path. Only the
// base name is matched. Latencies are left empty.
func (l Layout) Parse(dir string) (Run, error) {
	name := filepath.Base(dir)
	match := l.Pattern.FindStringSubmatch(name)
	if match == nil {
		return Run{}, errors.Wrapf(ErrUnrecognizedRun, "%s layout cannot parse %q", l.Name, name)
	}

	run := Run{Dir: dir}
	for i, group := range l.Pattern.SubexpNames() {
		switch group {
		case "category":
			v, err := strconv.Atoi(match[i])
			if err != nil {
				return Run{}, errors.Wrapf(err, "category in %q", name)
			}
			run.Category = v
		case "x":
			v, err := strconv.ParseFloat(match[i], 64)
			if err != nil {
				return Run{}, errors.Wrapf(err, "x value in %q", name)
			}
			run.X = v
		}
	}
	return run, nil
}
