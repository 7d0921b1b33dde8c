// Package dashboard builds the single-page dashboard: sidebar selectors,
// summary metrics, the top countries table, the choropleth map and the
// distribution chart.
package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/dataset"
	"eudash.dev/internal/derived"
)

//go:embed dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "dashboard.html"))

// Option is one entry of a sidebar select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Metric is a headline number with its caption.
type Metric struct {
	Title string
	Label string
	Value string
}

type Row struct {
	Rank    int
	Country string
	Value   string
}

// Page is the template data of the dashboard.
type Page struct {
	Title      string
	Indicators []Option
	Years      []Option

	Indicator string
	Year      int

	Average Metric
	Change  Metric
	Table   []Row

	MapHeading          string
	DistributionHeading string
	MapOptions          template.JS
	DistributionOptions template.JS
	Scripts             []string

	Source    string
	SourceURL string
	LoadedAt  string
}

// NewPage assembles the dashboard for an already computed view.
func NewPage(snapshot *dataset.Snapshot, cat *catalog.Catalog, view derived.View) (Page, error) {
	indicator := view.Selection.Indicator
	year := view.Selection.Year

	mapOptions, err := MapOptions(MapChart(view, cat))
	if err != nil {
		return Page{}, err
	}
	distOptions, err := Options(DistributionChart(view, cat))
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Title:     "EU Indicators Dashboard",
		Indicator: indicator,
		Year:      year,
		Average: Metric{
			Title: "Average " + indicator,
			Label: fmt.Sprintf("Average in %d", year),
			Value: view.MeanDisplay,
		},
		Change: Metric{
			Title: "Change in average " + indicator,
			Label: fmt.Sprintf("Average change from %d to %d", view.PreviousYear, year),
			Value: view.ChangeDisplay,
		},
		MapHeading:          indicator + " Map",
		DistributionHeading: indicator + " Distribution",
		MapOptions:          mapOptions,
		DistributionOptions: distOptions,
		Scripts:             []string{assetsHost + "echarts.min.js", assetsHost + "maps/world.js"},
		Source:              cat.Source,
		SourceURL:           cat.SourceURL,
		LoadedAt:            snapshot.LoadedAt().UTC().Format("2006-01-02 15:04 MST"),
	}

	for _, ind := range cat.IndicatorList() {
		page.Indicators = append(page.Indicators, Option{
			Value:    ind.Name,
			Label:    ind.Name,
			Selected: ind.Name == indicator,
		})
	}
	for _, y := range snapshot.Years() {
		page.Years = append(page.Years, Option{
			Value:    strconv.Itoa(y),
			Label:    strconv.Itoa(y),
			Selected: y == year,
		})
	}

	for _, row := range view.Table {
		page.Table = append(page.Table, Row{
			Rank:    row.Rank,
			Country: row.CountryName,
			Value:   strconv.FormatFloat(row.Value, 'f', -1, 64),
		})
	}

	return page, nil
}

// Render writes the page as HTML.
func (p Page) Render(w io.Writer) error {
	return pageTemplate.Execute(w, p)
}
