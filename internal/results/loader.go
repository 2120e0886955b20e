// internal/results/loader.go
package results

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNoRuns is returned when a results tree holds no leaf directories.
var ErrNoRuns = errors.New("no experiment runs found")

// LeafDirs walks root and returns every directory without subdirectories,
// root included when it has none. Directories listed in skip (other than root
// itself) are left out together with their contents, so a figures directory
// kept inside the results tree is not mistaken for a run.
func LeafDirs(root string, skip ...string) ([]string, error) {
	skipped, err := absPaths(skip)
	if err != nil {
		return nil, err
	}
	isSkipped := func(path string) (bool, error) {
		if len(skipped) == 0 || path == root {
			return false, nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return false, err
		}
		return skipped[abs], nil
	}

	var leaves []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		ignored, err := isSkipped(path)
		if err != nil {
			return err
		}
		if ignored {
			log.Debugf("Skipping %s", path)
			return filepath.SkipDir
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			ignored, err := isSkipped(filepath.Join(path, e.Name()))
			if err != nil {
				return err
			}
			if !ignored {
				return nil
			}
		}
		leaves = append(leaves, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}
	return leaves, nil
}

func absPaths(paths []string) (map[string]bool, error) {
	out := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", p)
		}
		out[abs] = true
	}
	return out, nil
}

// ReadColumn reads the named column of a CSV file as floats, in file order.
func ReadColumn(path, column string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "parsing %s", path)
	}
	if !slices.Contains(df.Names(), column) {
		return nil, errors.Errorf("%s: missing column %q", path, column)
	}
	values := df.Col(column).Float()
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, errors.Errorf("%s: row %d of %q is not a number", path, i+1, column)
		}
	}
	return values, nil
}

// Load discovers every run under root, orders the runs by ascending X value
// and reads their latencies. Any unparsable directory or file aborts the load.
// Directories in skip are ignored as in LeafDirs.
func Load(root string, layout Layout, skip ...string) ([]Run, error) {
	leaves, err := LeafDirs(root, skip...)
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, errors.Wrapf(ErrNoRuns, "under %s", root)
	}

	runs := make([]Run, 0, len(leaves))
	for _, dir := range leaves {
		run, err := layout.Parse(dir)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].X != runs[j].X {
			return runs[i].X < runs[j].X
		}
		return runs[i].Category < runs[j].Category
	})

	for i := range runs {
		path := filepath.Join(runs[i].Dir, LatenciesFile)
		log.Debugf("Reading %s", path)
		latencies, err := ReadColumn(path, layout.Column)
		if err != nil {
			return nil, errors.Wrapf(err, "run %s", runs[i].Name())
		}
		runs[i].Latencies = latencies
	}

	log.Debugf("Loaded %d %s runs from %s", len(runs), layout.Name, root)
	return runs, nil
}
