// Package chart renders the per-task cost bar chart and the project timeline
// as image files.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/zulandar/foreman/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
)

// Chart titles and file names.
const (
	CostTitle     = "Total Cost per Task"
	TimelineTitle = "Project Timeline (Gantt-style)"
	CostFile      = "total_cost.png"
	TimelineFile  = "timeline.png"
)

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	orange  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01, where
// 0001-01-01 is day 1.
const unixEpochOrdinal = 719163

// Ordinal returns the proleptic Gregorian day number of t's calendar date.
func Ordinal(t time.Time) int {
	y, m, d := t.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return int(days) + unixEpochOrdinal
}

// Size is a chart size in inches.
type Size struct {
	Width  float64
	Height float64
}

// Render writes both charts into dir and returns their paths.
func Render(dir string, size Size, tasks []models.TaskRecord) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("chart: create dir %s: %w", dir, err)
	}
	costPath := filepath.Join(dir, CostFile)
	if err := CostBars(costPath, size, tasks); err != nil {
		return nil, err
	}
	timelinePath := filepath.Join(dir, TimelineFile)
	if err := Timeline(timelinePath, size, tasks); err != nil {
		return nil, err
	}
	return []string{costPath, timelinePath}, nil
}

// CostBars renders one vertical bar per task, in table order, with height
// TotalCost.
func CostBars(path string, size Size, tasks []models.TaskRecord) error {
	if len(tasks) == 0 {
		return fmt.Errorf("chart: %s: no tasks", CostTitle)
	}
	values := make(plotter.Values, len(tasks))
	names := make([]string, len(tasks))
	for i, t := range tasks {
		values[i] = float64(t.TotalCost)
		names[i] = t.TaskName
	}

	p := plot.New()
	p.Title.Text = CostTitle
	p.Y.Label.Text = "Total Cost ($)"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("chart: %s: %w", CostTitle, err)
	}
	bars.Color = skyBlue
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)

	return save(p, path, size)
}

// Timeline renders one horizontal bar per task, in table order from the top,
// starting at the ordinal of StartDate with length DurationDays.
func Timeline(path string, size Size, tasks []models.TaskRecord) error {
	if len(tasks) == 0 {
		return fmt.Errorf("chart: %s: no tasks", TimelineTitle)
	}
	n := len(tasks)
	bars := &timelineBars{
		starts:  make([]float64, n),
		lengths: make([]float64, n),
		width:   vg.Points(14),
		color:   orange,
	}
	names := make([]string, n)
	for i, t := range tasks {
		// First task on top.
		row := n - 1 - i
		bars.starts[row] = float64(Ordinal(t.StartDate))
		bars.lengths[row] = float64(t.DurationDays)
		names[row] = t.TaskName
	}

	p := plot.New()
	p.Title.Text = TimelineTitle
	p.X.Label.Text = "Date (ordinal)"
	p.Add(bars)
	p.NominalY(names...)
	p.Y.Min = -0.5
	p.Y.Max = float64(n) - 0.5

	return save(p, path, size)
}

func save(p *plot.Plot, path string, size Size) error {
	if err := p.Save(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}

// timelineBars draws floating horizontal bars, one per nominal Y position.
type timelineBars struct {
	starts  []float64
	lengths []float64
	width   vg.Length
	color   color.Color
}

// Plot implements plot.Plotter.
func (b *timelineBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := b.width / 2
	for i := range b.starts {
		y := trY(float64(i))
		x0 := trX(b.starts[i])
		x1 := trX(b.starts[i] + b.lengths[i])
		pts := []vg.Point{
			{X: x0, Y: y - half},
			{X: x1, Y: y - half},
			{X: x1, Y: y + half},
			{X: x0, Y: y + half},
		}
		c.FillPolygon(b.color, c.ClipPolygonXY(pts))
	}
}

// DataRange implements plot.DataRanger.
func (b *timelineBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = b.starts[0], b.starts[0]+b.lengths[0]
	for i := range b.starts {
		xmin = min(xmin, b.starts[i])
		xmax = max(xmax, b.starts[i]+b.lengths[i])
	}
	return xmin - 1, xmax + 1, 0, float64(len(b.starts) - 1)
}
