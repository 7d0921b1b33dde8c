package derived

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eudash.dev/internal/dataset"
)

func obs(country string, year int, indicator string, value float64) dataset.Observation {
	return dataset.Observation{Country: country, Year: year, Indicator: indicator, Value: value}
}

func sumPercent(shares []Share) float64 {
	var total float64
	for _, s := range shares {
		total += s.Percent.Float64()
	}
	return total
}

var euCountries = []string{
	"AT", "BE", "BG", "CY", "CZ", "DE", "DK", "EE", "ES", "FI", "FR", "GR", "HR", "HU",
	"IE", "IT", "LT", "LU", "LV", "MT", "NL", "PL", "PT", "RO", "SE", "SI", "SK",
}

func randomYear(r *rand.Rand, indicator string, year int, scale float64) []dataset.Observation {
	out := make([]dataset.Observation, 0, len(euCountries))
	for _, c := range euCountries {
		out = append(out, obs(c, year, indicator, r.Float64()*scale+1))
	}
	return out
}

func TestFilterByYear(t *testing.T) {
	data := []dataset.Observation{
		obs("AT", 2000, "GDP (USD)", 1),
		obs("AT", 2001, "GDP (USD)", 2),
		obs("BE", 2000, "Total Population", 3),
	}

	got := FilterByYear(data, 2000)
	assert.Equal(t, []dataset.Observation{data[0], data[2]}, got)

	assert.Empty(t, FilterByYear(data, 1985))
	assert.Empty(t, FilterByYear(nil, 2000))
}

func TestRankDescending(t *testing.T) {
	data := []dataset.Observation{
		obs("AT", 2000, "GDP (USD)", 5),
		obs("BE", 2000, "GDP (USD)", 9),
		obs("BG", 2000, "Total Population", 100),
		obs("CY", 2000, "GDP (USD)", 7),
	}

	got := RankDescending(data, "GDP (USD)")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"BE", "CY", "AT"}, []string{got[0].Country, got[1].Country, got[2].Country})
}

func TestRankDescendingIsStable(t *testing.T) {
	data := []dataset.Observation{
		obs("DE", 2000, "GDP (USD)", 1),
		obs("AT", 2000, "GDP (USD)", 3),
		obs("FR", 2000, "GDP (USD)", 1),
		obs("BE", 2000, "GDP (USD)", 3),
		obs("CY", 2000, "GDP (USD)", 1),
	}

	got := RankDescending(data, "GDP (USD)")
	countries := make([]string, len(got))
	for i, o := range got {
		countries[i] = o.Country
	}
	assert.Equal(t, []string{"AT", "BE", "DE", "FR", "CY"}, countries)
}

func TestTopNForAndChartKind(t *testing.T) {
	tests := []struct {
		indicator string
		stock     bool
		topN      int
		chart     ChartKind
	}{
		{"Total Population", true, 27, ChartPie},
		{"GDP (USD)", true, 27, ChartPie},
		{"Exports (USD)", true, 27, ChartPie},
		{"Inflation (Annual %)", false, 10, ChartBar},
		{"Life Expectancy (Years)", false, 10, ChartBar},
		{"Unknown", false, 10, ChartBar},
	}

	for _, tt := range tests {
		t.Run(tt.indicator, func(t *testing.T) {
			assert.Equal(t, tt.stock, IsStock(tt.indicator))
			assert.Equal(t, tt.topN, TopNFor(tt.indicator))
			assert.Equal(t, tt.chart, ChartKindFor(tt.indicator))
		})
	}
}

func TestTopNWithPercentagesSumsToHundred(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))

	for _, indicator := range []string{"Total Population", "GDP (USD)", "Exports (USD)", "Inflation (Annual %)", "Life Expectancy (Years)"} {
		t.Run(indicator, func(t *testing.T) {
			for trial := 0; trial < 200; trial++ {
				ranked := RankDescending(randomYear(r, indicator, 2010, 1e9), indicator)
				n := TopNFor(indicator)

				shares := TopNWithPercentages(ranked, n)

				require.LessOrEqual(t, len(shares), n)
				// Per-row rounding drifts by at most half a cent per row.
				assert.InDelta(t, 100.0, sumPercent(shares), float64(len(shares))*0.005+1e-9)

				var total float64
				for _, s := range shares {
					total += s.Value
				}
				for _, s := range shares {
					assert.InDelta(t, s.Value/total*100, s.Percent.Float64(), 0.005+1e-9)
				}
			}
		})
	}
}

func TestTopNWithPercentages(t *testing.T) {
	ranked := []dataset.Observation{
		obs("AT", 2000, "GDP (USD)", 1),
		obs("BE", 2000, "GDP (USD)", 1),
		obs("BG", 2000, "GDP (USD)", 1),
	}

	shares := TopNWithPercentages(ranked, 10)
	require.Len(t, shares, 3)
	assert.Equal(t, "AT", shares[0].Country)
	for _, s := range shares {
		assert.InDelta(t, 33.33, s.Percent.Float64(), 1e-9, s.Country)
	}
	assert.InDelta(t, 100.0, sumPercent(shares), 0.05)

	// Two thirds rounds up on its own row.
	shares = TopNWithPercentages([]dataset.Observation{
		obs("AT", 2000, "GDP (USD)", 2),
		obs("BE", 2000, "GDP (USD)", 1),
	}, 10)
	require.Len(t, shares, 2)
	assert.InDelta(t, 66.67, shares[0].Percent.Float64(), 1e-9)
	assert.InDelta(t, 33.33, shares[1].Percent.Float64(), 1e-9)

	shares = TopNWithPercentages(ranked, 2)
	require.Len(t, shares, 2)
	assert.InDelta(t, 50.0, shares[0].Percent.Float64(), 1e-9)

	assert.Empty(t, TopNWithPercentages(ranked, 0))
	assert.Empty(t, TopNWithPercentages(nil, 10))
}

func TestTopNWithPercentagesNegativeValues(t *testing.T) {
	ranked := []dataset.Observation{
		obs("AT", 2000, "Inflation (Annual %)", 6),
		obs("BE", 2000, "Inflation (Annual %)", 3),
		obs("BG", 2000, "Inflation (Annual %)", -1),
	}

	shares := TopNWithPercentages(ranked, 10)
	require.Len(t, shares, 3)
	assert.InDelta(t, 75.0, shares[0].Percent.Float64(), 1e-9)
	assert.InDelta(t, -12.5, shares[2].Percent.Float64(), 1e-9)
	assert.InDelta(t, 100.0, sumPercent(shares), 1e-9)
}

func TestTopNWithPercentagesZeroSum(t *testing.T) {
	ranked := []dataset.Observation{
		obs("AT", 2000, "Inflation (Annual %)", 2),
		obs("BE", 2000, "Inflation (Annual %)", -2),
	}

	shares := TopNWithPercentages(ranked, 10)
	require.Len(t, shares, 2)
	for _, s := range shares {
		assert.False(t, s.Percent.Valid())
	}
}

func TestMeanForYear(t *testing.T) {
	data := []dataset.Observation{
		obs("AT", 2000, "GDP (USD)", 10),
		obs("BE", 2000, "GDP (USD)", 20),
		obs("BG", 2000, "Total Population", 1000),
		obs("AT", 2001, "GDP (USD)", 99),
	}

	assert.InDelta(t, 15.0, MeanForYear(data, "GDP (USD)", 2000).Float64(), 1e-9)
	assert.False(t, MeanForYear(data, "GDP (USD)", 1999).Valid())
	assert.False(t, MeanForYear(data, "Exports (USD)", 2000).Valid())
}

func TestYearOverYearChange(t *testing.T) {
	data := []dataset.Observation{
		obs("AT", 1999, "GDP (USD)", 100),
		obs("BE", 1999, "GDP (USD)", 100),
		obs("AT", 2000, "GDP (USD)", 110),
		obs("BE", 2000, "GDP (USD)", 110),
		obs("AT", 2001, "GDP (USD)", 99),
		obs("AT", 2003, "GDP (USD)", 50),
		obs("AT", 2004, "Inflation (Annual %)", 0),
		obs("AT", 2005, "Inflation (Annual %)", 2),
	}

	t.Run("first year is not applicable", func(t *testing.T) {
		change := YearOverYearChange(data, "GDP (USD)", 1999, 1999)
		assert.Equal(t, ChangeNotApplicable, change.Status)
		assert.Equal(t, "N/A", change.String())
	})

	t.Run("increase", func(t *testing.T) {
		change := YearOverYearChange(data, "GDP (USD)", 2000, 1999)
		assert.Equal(t, ChangeDefined, change.Status)
		assert.InDelta(t, 10.0, change.Percent.Float64(), 1e-9)
		assert.Equal(t, "10.00%", change.String())
	})

	t.Run("decrease", func(t *testing.T) {
		change := YearOverYearChange(data, "GDP (USD)", 2001, 1999)
		assert.Equal(t, ChangeDefined, change.Status)
		assert.InDelta(t, -10.0, change.Percent.Float64(), 1e-9)
		assert.Equal(t, "-10.00%", change.String())
	})

	t.Run("missing prior year is undefined", func(t *testing.T) {
		change := YearOverYearChange(data, "GDP (USD)", 2003, 1999)
		assert.Equal(t, ChangeUndefined, change.Status)
		assert.Equal(t, "undefined", change.String())
	})

	t.Run("missing current year is undefined", func(t *testing.T) {
		change := YearOverYearChange(data, "GDP (USD)", 2002, 1999)
		assert.Equal(t, ChangeUndefined, change.Status)
	})

	t.Run("zero prior mean is undefined", func(t *testing.T) {
		change := YearOverYearChange(data, "Inflation (Annual %)", 2005, 1999)
		assert.Equal(t, ChangeUndefined, change.Status)
		assert.False(t, change.Percent.Valid())
	})
}

func TestYearOverYearChangeNeverPanics(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var data []dataset.Observation
	for year := 1999; year <= 2022; year++ {
		if year%5 == 0 {
			continue
		}
		data = append(data, randomYear(r, "Life Expectancy (Years)", year, 80)...)
	}

	for year := 1999; year <= 2022; year++ {
		change := YearOverYearChange(data, "Life Expectancy (Years)", year, 1999)
		switch {
		case year == 1999:
			assert.Equal(t, ChangeNotApplicable, change.Status, year)
		case year%5 == 0 || (year-1)%5 == 0:
			assert.Equal(t, ChangeUndefined, change.Status, year)
		default:
			assert.Equal(t, ChangeDefined, change.Status, year)
			assert.True(t, change.Percent.Valid(), year)
		}
	}
}

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2_500_000_000, "2.5B"},
		{3_400_000, "3.4M"},
		{42.567, "42.57"},
		{1e9, "1.0B"},
		{1e6, "1.0M"},
		{999_999.994, "999999.99"},
		{80, "80"},
		{0.5, "0.5"},
		{-3.456, "-3.46"},
		{math.NaN(), "N/A"},
		{math.Inf(1), "N/A"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMagnitude(tt.value), "FormatMagnitude(%v)", tt.value)
	}
}
