// Package dataset turns provider records into an immutable snapshot of
// observations that the rest of the service reads.
package dataset

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Observation is one indicator value for a country and year. Indicator is the
// display name from the catalog.
type Observation struct {
	Country   string  `json:"country"`
	Year      int     `json:"year"`
	Indicator string  `json:"indicator"`
	Value     float64 `json:"value"`
}

// Snapshot is a read-only handle over observations sorted by country then
// year. It is safe for concurrent use.
type Snapshot struct {
	observations []Observation
	years        []int
	countries    []string
	source       string
	loadedAt     time.Time
}

// NewSnapshot copies and stable-sorts observations by country then year.
// Observations of the same country and year keep their input order.
func NewSnapshot(observations []Observation, source string) *Snapshot {
	obs := slices.Clone(observations)
	slices.SortStableFunc(obs, func(a, b Observation) int {
		if c := strings.Compare(a.Country, b.Country); c != 0 {
			return c
		}
		return a.Year - b.Year
	})

	var years []int
	var countries []string
	for _, o := range obs {
		years = append(years, o.Year)
		countries = append(countries, o.Country)
	}
	slices.Sort(years)
	slices.Sort(countries)

	return &Snapshot{
		observations: obs,
		years:        slices.Compact(years),
		countries:    slices.Compact(countries),
		source:       source,
		loadedAt:     time.Now(),
	}
}

// Observations returns a copy of all observations in snapshot order.
func (s *Snapshot) Observations() []Observation {
	return slices.Clone(s.observations)
}

// Len is the number of observations.
func (s *Snapshot) Len() int {
	return len(s.observations)
}

// Years returns the distinct years present, ascending.
func (s *Snapshot) Years() []int {
	return slices.Clone(s.years)
}

// HasYear reports whether any observation falls in year.
func (s *Snapshot) HasYear(year int) bool {
	_, found := slices.BinarySearch(s.years, year)
	return found
}

// Countries returns the distinct country codes present, ascending.
func (s *Snapshot) Countries() []string {
	return slices.Clone(s.countries)
}

func (s *Snapshot) Source() string {
	return s.source
}

func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// LogStatistics logs a summary of the snapshot.
func (s *Snapshot) LogStatistics(logger *slog.Logger) {
	if logger == nil {
		return
	}
	attrs := []any{
		slog.String("source", s.source),
		slog.Time("loaded_at", s.loadedAt),
		slog.Int("observations", len(s.observations)),
		slog.Int("countries", len(s.countries)),
		slog.Int("years", len(s.years)),
	}
	if len(s.years) > 0 {
		attrs = append(attrs,
			slog.Int("first_year", s.years[0]),
			slog.Int("last_year", s.years[len(s.years)-1]))
	}
	logger.Info("snapshot_statistics", attrs...)
}
