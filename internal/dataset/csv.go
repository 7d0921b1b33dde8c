package dataset

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/worldbank"
)

// CSV column names. Files written by WriteCSV carry an extra "indicator"
// column with the display name, which CSVSource ignores.
const (
	colCountry       = "country"
	colYear          = "year"
	colIndicatorCode = "indicator_code"
	colIndicator     = "indicator"
	colValue         = "value"
)

// CSVSource reads provider records from a local CSV file with the columns
// country, year, indicator_code and value. Empty or NA values are skipped.
type CSVSource struct {
	Path string
}

func (s *CSVSource) String() string {
	return s.Path
}

// Fetch reads the file and returns the records matching req.
func (s *CSVSource) Fetch(ctx context.Context, req worldbank.Request) ([]worldbank.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("error reading local observations file: %w", err)
	}
	defer f.Close() // nolint

	records, err := readRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	matched := records[:0]
	for _, rec := range records {
		if !slices.Contains(req.Indicators, rec.Indicator) || !slices.Contains(req.Countries, rec.Country) {
			continue
		}
		if rec.Year < req.Start || rec.Year > req.End {
			continue
		}
		matched = append(matched, rec)
	}
	return matched, nil
}

func readRecords(r io.Reader) ([]worldbank.Record, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(map[string]series.Type{
		colCountry:       series.String,
		colYear:          series.Int,
		colIndicatorCode: series.String,
		colValue:         series.Float,
	}))
	if df.Err != nil {
		return nil, fmt.Errorf("parsing csv: %w", df.Err)
	}

	for _, name := range []string{colCountry, colYear, colIndicatorCode, colValue} {
		if !slices.Contains(df.Names(), name) {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	countries := df.Col(colCountry).Records()
	codes := df.Col(colIndicatorCode).Records()
	values := df.Col(colValue).Float()
	years, err := df.Col(colYear).Int()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colYear, err)
	}

	records := make([]worldbank.Record, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		records = append(records, worldbank.Record{
			Country:   countries[i],
			Year:      years[i],
			Indicator: codes[i],
			Value:     values[i],
		})
	}
	return records, nil
}

// WriteCSV writes the snapshot in a form CSVSource can read back.
func WriteCSV(w io.Writer, snapshot *Snapshot, cat *catalog.Catalog) error {
	obs := snapshot.Observations()

	countries := make([]string, len(obs))
	years := make([]int, len(obs))
	codes := make([]string, len(obs))
	names := make([]string, len(obs))
	values := make([]float64, len(obs))
	for i, o := range obs {
		code, _ := cat.CodeFor(o.Indicator)
		countries[i] = o.Country
		years[i] = o.Year
		codes[i] = code
		names[i] = o.Indicator
		values[i] = o.Value
	}

	df := dataframe.New(
		series.New(countries, series.String, colCountry),
		series.New(years, series.Int, colYear),
		series.New(codes, series.String, colIndicatorCode),
		series.New(names, series.String, colIndicator),
		series.New(values, series.Float, colValue),
	)
	if df.Err != nil {
		return fmt.Errorf("building csv frame: %w", df.Err)
	}
	return df.WriteCSV(w)
}
