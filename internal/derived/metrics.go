// Package derived computes the per-selection view of the snapshot: the
// year's ranking, top-N shares, the cross-country mean and its
// year-over-year change. Every function here is pure.
package derived

import (
	"math"
	"slices"

	"eudash.dev/internal/dataset"
)

// ChartKind is the distribution chart used for an indicator.
type ChartKind string

const (
	ChartPie ChartKind = "pie"
	ChartBar ChartKind = "bar"
)

const (
	stockTopN   = 27
	defaultTopN = 10

	// TableRows is the number of rows in the top countries table.
	TableRows = 10
)

// Stock indicators are levels whose distribution across the whole country
// set is meaningful. The list is fixed.
var stockIndicators = map[string]struct{}{
	"Total Population": {},
	"GDP (USD)":        {},
	"Exports (USD)":    {},
}

// IsStock reports whether indicator (a display name) is a stock indicator.
func IsStock(indicator string) bool {
	_, ok := stockIndicators[indicator]
	return ok
}

// TopNFor returns 27 for stock indicators and 10 otherwise.
func TopNFor(indicator string) int {
	if IsStock(indicator) {
		return stockTopN
	}
	return defaultTopN
}

func ChartKindFor(indicator string) ChartKind {
	if IsStock(indicator) {
		return ChartPie
	}
	return ChartBar
}

// Share is a ranked observation with its percentage of the top-N total.
type Share struct {
	dataset.Observation
	Percent Number `json:"percent"`
}

// FilterByYear returns the observations of year in input order.
func FilterByYear(obs []dataset.Observation, year int) []dataset.Observation {
	var out []dataset.Observation
	for _, o := range obs {
		if o.Year == year {
			out = append(out, o)
		}
	}
	return out
}

// RankDescending returns the observations of indicator sorted by value,
// largest first. Equal values keep their input order.
func RankDescending(obs []dataset.Observation, indicator string) []dataset.Observation {
	var out []dataset.Observation
	for _, o := range obs {
		if o.Indicator == indicator {
			out = append(out, o)
		}
	}
	slices.SortStableFunc(out, func(a, b dataset.Observation) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		default:
			return 0
		}
	})
	return out
}

// TopNWithPercentages takes the first n ranked rows and gives each its share
// of their sum, in percent rounded to two decimals. Each row is rounded on
// its own, so the total may drift from 100 by up to half a cent per row. When
// the sum is zero every percentage is undefined.
func TopNWithPercentages(ranked []dataset.Observation, n int) []Share {
	if n < 0 {
		n = 0
	}
	top := ranked[:min(n, len(ranked))]
	shares := make([]Share, len(top))

	var sum float64
	for _, o := range top {
		sum += o.Value
	}

	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		for i, o := range top {
			shares[i] = Share{Observation: o, Percent: Undefined()}
		}
		return shares
	}

	for i, o := range top {
		shares[i] = Share{Observation: o, Percent: Number(round2(o.Value / sum * 100))}
	}
	return shares
}

// MeanForYear is the arithmetic mean of indicator across the countries
// reporting it in year, or undefined when none do.
func MeanForYear(obs []dataset.Observation, indicator string, year int) Number {
	var sum float64
	count := 0
	for _, o := range obs {
		if o.Year == year && o.Indicator == indicator {
			sum += o.Value
			count++
		}
	}
	if count == 0 {
		return Undefined()
	}
	return Number(sum / float64(count))
}

// YearOverYearChange compares the mean of year with the mean of the prior
// year. It is not applicable for firstYear and undefined when either mean is
// undefined or the prior mean is zero.
func YearOverYearChange(obs []dataset.Observation, indicator string, year, firstYear int) Change {
	if year == firstYear {
		return notApplicableChange()
	}

	current := MeanForYear(obs, indicator, year)
	previous := MeanForYear(obs, indicator, year-1)
	if !current.Valid() || !previous.Valid() || previous == 0 {
		return undefinedChange()
	}

	return definedChange(round2(float64(current-previous) / float64(previous) * 100))
}
