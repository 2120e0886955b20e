// internal/render/figure.go
// Package render draws multi-panel line charts and writes them as PNG files.
package render

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// DefaultWidth is the width of a figure that does not set one.
	DefaultWidth = 12 * vg.Inch
	// DefaultHeight is the height of a figure that does not set one.
	DefaultHeight = 5 * vg.Inch

	titleSize = 14
	titlePad  = 2 * vg.Millimeter
)

var (
	// ErrNoPanels is returned when saving a figure without panels.
	ErrNoPanels = errors.New("figure has no panels")
	// ErrEmptyPanel is returned for a panel or line without data.
	ErrEmptyPanel = errors.New("nothing to plot")
	// ErrMisaligned is returned when a line's values do not line up with
	// its X values or with the panel axis.
	ErrMisaligned = errors.New("series misaligned with axis")
)

// Line is one plotted series.
type Line struct {
	Label string
	X     []float64
	Y     []float64
	// Points draws a marker at every value.
	Points bool
	// Annotate writes the integer part of every value next to its point.
	Annotate bool
}

// Panel is one subplot. When Axis is set, every line must have exactly
// those X values in that order.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Axis   []float64
	Lines  []Line
}

// Figure is a row of panels under a common title.
type Figure struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	// ShareY gives every panel the same Y range.
	ShareY bool
	Panels []Panel
}

func (p Panel) validate() error {
	if len(p.Lines) == 0 {
		return errors.Wrapf(ErrEmptyPanel, "panel %q has no lines", p.Title)
	}
	for _, l := range p.Lines {
		if len(l.X) != len(l.Y) {
			return errors.Wrapf(ErrMisaligned, "panel %q line %q: %d x values but %d y values", p.Title, l.Label, len(l.X), len(l.Y))
		}
		if len(l.X) == 0 {
			return errors.Wrapf(ErrEmptyPanel, "panel %q line %q has no points", p.Title, l.Label)
		}
		if p.Axis == nil {
			continue
		}
		if len(l.X) != len(p.Axis) {
			return errors.Wrapf(ErrMisaligned, "panel %q line %q: %d points for %d axis entries", p.Title, l.Label, len(l.X), len(p.Axis))
		}
		for i := range l.X {
			if l.X[i] != p.Axis[i] {
				return errors.Wrapf(ErrMisaligned, "panel %q line %q: point %d at x=%g, axis has %g", p.Title, l.Label, i, l.X[i], p.Axis[i])
			}
		}
	}
	return nil
}

func (p Panel) plot() (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Legend.Top = true
	pl.Legend.Left = true
	pl.Legend.Padding = vg.Millimeter
	pl.Add(plotter.NewGrid())

	for i, l := range p.Lines {
		xys := make(plotter.XYs, len(l.X))
		for j := range l.X {
			xys[j].X = l.X[j]
			xys[j].Y = l.Y[j]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "line %q", l.Label)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		pl.Add(line)
		thumbs := []plot.Thumbnailer{line}

		if l.Points {
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, errors.Wrapf(err, "points of %q", l.Label)
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Shape = plotutil.Shape(i)
			sc.GlyphStyle.Radius = vg.Points(3)
			pl.Add(sc)
			thumbs = append(thumbs, sc)
		}

		if l.Annotate {
			labels := make([]string, len(xys))
			for j, xy := range xys {
				labels[j] = strconv.Itoa(int(xy.Y))
			}
			lb, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
			if err != nil {
				return nil, errors.Wrapf(err, "annotations of %q", l.Label)
			}
			lb.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
			pl.Add(lb)
		}

		if l.Label != "" {
			pl.Legend.Add(l.Label, thumbs...)
		}
	}
	return pl, nil
}

func shareY(plots []*plot.Plot) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range plots {
		lo = math.Min(lo, p.Y.Min)
		hi = math.Max(hi, p.Y.Max)
	}
	for _, p := range plots {
		p.Y.Min, p.Y.Max = lo, hi
	}
}

func (f Figure) size() (vg.Length, vg.Length) {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Save draws the figure and writes it to path as a PNG, replacing any
// existing file. Nothing is written when validation fails.
func (f Figure) Save(path string) error {
	if len(f.Panels) == 0 {
		return ErrNoPanels
	}
	for _, p := range f.Panels {
		if err := p.validate(); err != nil {
			return err
		}
	}

	row := make([]*plot.Plot, len(f.Panels))
	for i, p := range f.Panels {
		pl, err := p.plot()
		if err != nil {
			return err
		}
		row[i] = pl
	}
	if f.ShareY {
		shareY(row)
	}

	w, h := f.size()
	img := vgimg.New(w, h)
	dc := draw.New(img)

	if f.Title != "" {
		sty := text.Style{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, titleSize),
			XAlign:  draw.XCenter,
			YAlign:  draw.YTop,
			Handler: plot.DefaultTextHandler,
		}
		dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - titlePad}, f.Title)
		dc = draw.Crop(dc, 0, 0, 0, -(sty.Height(f.Title) + 2*titlePad))
	}

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for i, p := range row {
		p.Draw(canvases[0][i])
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(out); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	log.Debugf("Wrote %d-panel figure to %s", len(row), path)
	return out.Close()
}
