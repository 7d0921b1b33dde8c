package derived

import (
	"errors"
	"fmt"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/dataset"
)

var (
	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrYearOutOfRange   = errors.New("year out of range")
)

// Selection is the indicator and year picked by the user. Indicator may be a
// display name or a provider code.
type Selection struct {
	Indicator string `json:"indicator"`
	Year      int    `json:"year"`
}

// TableRow is one line of the top countries table.
type TableRow struct {
	Rank        int     `json:"rank"`
	Country     string  `json:"country"`
	CountryName string  `json:"countryName"`
	Value       float64 `json:"value"`
}

// View is everything the presentation layer needs for one selection.
type View struct {
	Selection     Selection             `json:"selection"`
	IndicatorCode string                `json:"indicatorCode"`
	Stock         bool                  `json:"stock"`
	Chart         ChartKind             `json:"chart"`
	TopN          int                   `json:"topN"`
	PreviousYear  int                   `json:"previousYear"`
	Ranked        []dataset.Observation `json:"ranked"`
	Top           []Share               `json:"top"`
	Table         []TableRow            `json:"table"`
	Mean          Number                `json:"mean"`
	MeanDisplay   string                `json:"meanDisplay"`
	Change        Change                `json:"change"`
	ChangeDisplay string                `json:"changeDisplay"`
}

// DefaultSelection picks the first catalog indicator and the first year of
// the snapshot, falling back to the start of the catalog range when the
// snapshot is empty.
func DefaultSelection(snapshot *dataset.Snapshot, cat *catalog.Catalog) Selection {
	sel := Selection{Year: cat.StartYear}
	if names := cat.Names(); len(names) > 0 {
		sel.Indicator = names[0]
	}
	if years := snapshot.Years(); len(years) > 0 {
		sel.Year = years[0]
	}
	return sel
}

// ValidateSelection resolves the indicator to its catalog entry and checks
// the year against the catalog range.
func ValidateSelection(cat *catalog.Catalog, sel Selection) (catalog.Indicator, error) {
	ind, ok := cat.Lookup(sel.Indicator)
	if !ok {
		return catalog.Indicator{}, fmt.Errorf("%w: %q", ErrUnknownIndicator, sel.Indicator)
	}
	if !cat.InRange(sel.Year) {
		return catalog.Indicator{}, fmt.Errorf("%w: %d not in %d..%d", ErrYearOutOfRange, sel.Year, cat.StartYear, cat.EndYear)
	}
	return ind, nil
}

// BuildView recomputes the view for sel from scratch. A year inside the range
// without data yields empty rows and an undefined mean, not an error.
func BuildView(snapshot *dataset.Snapshot, cat *catalog.Catalog, sel Selection) (View, error) {
	ind, err := ValidateSelection(cat, sel)
	if err != nil {
		return View{}, err
	}

	obs := snapshot.Observations()
	ranked := RankDescending(FilterByYear(obs, sel.Year), ind.Name)
	if ranked == nil {
		ranked = []dataset.Observation{}
	}
	topN := TopNFor(ind.Name)
	mean := MeanForYear(obs, ind.Name, sel.Year)
	change := YearOverYearChange(obs, ind.Name, sel.Year, cat.StartYear)

	return View{
		Selection:     Selection{Indicator: ind.Name, Year: sel.Year},
		IndicatorCode: ind.Code,
		Stock:         IsStock(ind.Name),
		Chart:         ChartKindFor(ind.Name),
		TopN:          topN,
		PreviousYear:  sel.Year - 1,
		Ranked:        ranked,
		Top:           TopNWithPercentages(ranked, topN),
		Table:         tableRows(ranked, cat),
		Mean:          mean,
		MeanDisplay:   FormatMagnitude(float64(mean)),
		Change:        change,
		ChangeDisplay: change.String(),
	}, nil
}

func tableRows(ranked []dataset.Observation, cat *catalog.Catalog) []TableRow {
	rows := make([]TableRow, 0, min(TableRows, len(ranked)))
	for i, o := range ranked[:min(TableRows, len(ranked))] {
		name := o.Country
		if country, ok := cat.Country(o.Country); ok {
			name = country.Name()
		}
		rows = append(rows, TableRow{
			Rank:        i + 1,
			Country:     o.Country,
			CountryName: name,
			Value:       round2(o.Value),
		})
	}
	return rows
}

// MapTitle is the heading of the choropleth for the view.
func (v View) MapTitle() string {
	return fmt.Sprintf("%s in %d", v.Selection.Indicator, v.Selection.Year)
}

// DistributionTitle is the heading of the pie or bar chart for the view.
func (v View) DistributionTitle() string {
	if v.Chart == ChartPie {
		return fmt.Sprintf("Percentage of %s in EU Countries", v.Selection.Indicator)
	}
	return fmt.Sprintf("%s for EU Countries in %d", v.Selection.Indicator, v.Selection.Year)
}
