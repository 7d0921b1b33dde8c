// Package render draws static PNG versions of the distribution chart.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"eudash.dev/internal/dataset"
	"eudash.dev/internal/derived"
)

// ErrNoData is returned when a chart would have nothing to draw.
var ErrNoData = errors.New("no data to draw")

const (
	pieWidth  = 900
	pieHeight = 700

	barWidth  = 12 * vg.Inch
	barHeight = 6 * vg.Inch
)

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// Distribution writes the view's distribution chart as PNG: a pie of the
// top-N shares for stock indicators, otherwise a bar chart of the ranking.
func Distribution(w io.Writer, view derived.View) error {
	if view.Chart == derived.ChartPie {
		return Pie(w, view.DistributionTitle(), view.Top)
	}
	return Bar(w, view.DistributionTitle(), view.Selection.Indicator, view.Ranked)
}

// Pie draws shares as a pie chart. Non-positive values cannot be drawn as
// slices and are left out.
func Pie(w io.Writer, title string, shares []derived.Share) error {
	values := make([]chart.Value, 0, len(shares))
	for _, s := range shares {
		if !(s.Value > 0) || math.IsInf(s.Value, 0) {
			continue
		}
		values = append(values, chart.Value{
			Label: s.Country,
			Value: s.Value,
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  pieWidth,
		Height: pieHeight,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering pie chart: %w", err)
	}
	return nil
}

// Bar draws one bar per observation in the given order.
func Bar(w io.Writer, title, yLabel string, rows []dataset.Observation) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = yLabel

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, o := range rows {
		values[i] = o.Value
		labels[i] = o.Country
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.Add(plotter.NewGrid())
	p.NominalX(labels...)
	p.X.Tick.Label.YAlign = draw.YTop

	wt, err := p.WriterTo(barWidth, barHeight, "png")
	if err != nil {
		return fmt.Errorf("creating png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing bar chart: %w", err)
	}
	return nil
}
