package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strings"
	"time"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/logging"
	"eudash.dev/internal/worldbank"
)

// Source provides raw provider records.
type Source interface {
	Fetch(ctx context.Context, req worldbank.Request) ([]worldbank.Record, error)
}

// NewSource returns a World Bank API client for http(s) locations and a CSV
// file source for anything else.
func NewSource(location string, timeout time.Duration, logger *slog.Logger) Source {
	if IsRemote(location) {
		opts := []worldbank.Option{worldbank.WithLogger(logger)}
		if timeout > 0 {
			opts = append(opts, worldbank.WithHTTPClient(&http.Client{Timeout: timeout}))
		}
		return worldbank.NewClient(location, opts...)
	}
	return &CSVSource{Path: location}
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load fetches every catalog indicator for the catalog countries and date
// range, keeps the records the catalog knows about and renames indicator codes
// to display names. Any fetch error aborts the load.
func Load(ctx context.Context, src Source, cat *catalog.Catalog, logger *slog.Logger) (*Snapshot, error) {
	start := time.Now()

	records, err := src.Fetch(ctx, worldbank.Request{
		Indicators: cat.Codes(),
		Countries:  cat.CountryCodes(),
		Start:      cat.StartYear,
		End:        cat.EndYear,
	})
	if err != nil {
		return nil, fmt.Errorf("loading observations: %w", err)
	}

	observations := make([]Observation, 0, len(records))
	dropped := 0
	for _, rec := range records {
		obs, ok := toObservation(rec, cat)
		if !ok {
			dropped++
			continue
		}
		observations = append(observations, obs)
	}

	// NewSnapshot keeps input order inside a country-year, so catalog order
	// is applied first.
	slices.SortStableFunc(observations, func(a, b Observation) int {
		return cat.Position(a.Indicator) - cat.Position(b.Indicator)
	})
	snapshot := NewSnapshot(observations, describe(src))

	logging.LogOperation(logger, "snapshot_loaded",
		slog.String("source", snapshot.Source()),
		slog.Int("records", len(records)),
		slog.Int("observations", snapshot.Len()),
		slog.Int("dropped", dropped),
		slog.Duration("duration", time.Since(start)))

	return snapshot, nil
}

func toObservation(rec worldbank.Record, cat *catalog.Catalog) (Observation, bool) {
	name, ok := cat.NameFor(rec.Indicator)
	if !ok {
		return Observation{}, false
	}
	country, ok := cat.Country(rec.Country)
	if !ok {
		return Observation{}, false
	}
	if !cat.InRange(rec.Year) || math.IsNaN(rec.Value) || math.IsInf(rec.Value, 0) {
		return Observation{}, false
	}
	return Observation{
		Country:   country.Code,
		Year:      rec.Year,
		Indicator: name,
		Value:     rec.Value,
	}, true
}

func describe(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
