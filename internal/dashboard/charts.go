package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/derived"
)

const assetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// The world geometry is shown zoomed onto Europe.
var (
	europeCenter = []float64{15, 53}
	europeZoom   = 4.2
)

// Fixed blue scale, light to dark.
var mapPalette = []string{"#f7fbff", "#c6dbef", "#6baed6", "#2171b5", "#08306b"}

// Chart is a go-echarts chart that can be rendered to its option object.
type Chart interface {
	Validate()
	JSON() map[string]interface{}
}

// MapChart is the choropleth of the ranked values for the selected year.
func MapChart(view derived.View, cat *catalog.Catalog) *charts.Map {
	data := make([]opts.MapData, 0, len(view.Ranked))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, o := range view.Ranked {
		data = append(data, opts.MapData{Name: mapLabel(cat, o.Country), Value: o.Value})
		lo = math.Min(lo, o.Value)
		hi = math.Max(hi, o.Value)
	}
	if len(data) == 0 {
		lo, hi = 0, 1
	}

	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: view.MapTitle(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange: &opts.VisualMapInRange{
				Color: mapPalette,
			},
		}),
	)
	m.AddSeries(view.Selection.Indicator, data)
	return m
}

// PieChart is the doughnut of the top-N shares. Slices carry the view's
// rounded percentages; undefined shares are left out.
func PieChart(view derived.View, cat *catalog.Catalog) *charts.Pie {
	data := make([]opts.PieData, 0, len(view.Top))
	for _, s := range view.Top {
		if !s.Percent.Valid() {
			continue
		}
		data = append(data, opts.PieData{Name: countryName(cat, s.Country), Value: s.Percent.Float64()})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: view.DistributionTitle(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c}%",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
	)

	pie.AddSeries(view.Selection.Indicator, data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {d}%",
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{"40%", "70%"},
				Center: []string{"50%", "55%"},
			}),
		)
	return pie
}

// BarChart plots the full ranking for the selected year.
func BarChart(view derived.View, cat *catalog.Catalog) *charts.Bar {
	names := make([]string, 0, len(view.Ranked))
	data := make([]opts.BarData, 0, len(view.Ranked))
	for _, o := range view.Ranked {
		names = append(names, countryName(cat, o.Country))
		data = append(data, opts.BarData{Value: o.Value})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: view.DistributionTitle(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
	)
	bar.SetXAxis(names).AddSeries(view.Selection.Indicator, data)
	return bar
}

// DistributionChart picks the pie or the bar chart for the view.
func DistributionChart(view derived.View, cat *catalog.Catalog) Chart {
	if view.Chart == derived.ChartPie {
		return PieChart(view, cat)
	}
	return BarChart(view, cat)
}

// Options renders the chart's echarts option object for embedding in a
// script block.
func Options(chart Chart) (template.JS, error) {
	chart.Validate()
	raw, err := json.Marshal(chart.JSON())
	if err != nil {
		return "", fmt.Errorf("encoding chart options: %w", err)
	}
	return template.JS(raw), nil
}

// MapOptions is Options for the choropleth with every series zoomed onto
// Europe.
func MapOptions(chart *charts.Map) (template.JS, error) {
	chart.Validate()
	raw, err := json.Marshal(chart.JSON())
	if err != nil {
		return "", fmt.Errorf("encoding map options: %w", err)
	}

	var option map[string]interface{}
	if err := json.Unmarshal(raw, &option); err != nil {
		return "", fmt.Errorf("decoding map options: %w", err)
	}
	if series, ok := option["series"].([]interface{}); ok {
		for _, s := range series {
			if entry, ok := s.(map[string]interface{}); ok {
				entry["center"] = europeCenter
				entry["zoom"] = europeZoom
				entry["roam"] = true
			}
		}
	}

	raw, err = json.Marshal(option)
	if err != nil {
		return "", fmt.Errorf("encoding map options: %w", err)
	}
	return template.JS(raw), nil
}

func countryName(cat *catalog.Catalog, code string) string {
	if country, ok := cat.Country(code); ok {
		return country.Name()
	}
	return code
}

func mapLabel(cat *catalog.Catalog, code string) string {
	if country, ok := cat.Country(code); ok {
		return country.MapLabel()
	}
	return code
}
