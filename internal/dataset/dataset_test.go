package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eudash.dev/internal/catalog"
	"eudash.dev/internal/models"
	"eudash.dev/internal/worldbank"
)

type fakeSource struct {
	records []worldbank.Record
	err     error
	got     worldbank.Request
}

func (f *fakeSource) Fetch(_ context.Context, req worldbank.Request) ([]worldbank.Record, error) {
	f.got = req
	return f.records, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadFromFake(t *testing.T) {
	src := &fakeSource{records: []worldbank.Record{
		{Country: "BE", Year: 2000, Indicator: "NE.EXP.GNFS.CD", Value: 5},
		{Country: "BE", Year: 2000, Indicator: "SP.POP.TOTL", Value: 10},
		{Country: "AT", Year: 2001, Indicator: "SP.POP.TOTL", Value: 2},
		{Country: "AT", Year: 2000, Indicator: "SP.POP.TOTL", Value: 1},
		{Country: "US", Year: 2000, Indicator: "SP.POP.TOTL", Value: 300},
		{Country: "AT", Year: 1980, Indicator: "SP.POP.TOTL", Value: 7},
		{Country: "AT", Year: 2000, Indicator: "SL.UEM.TOTL.ZS", Value: 4},
	}}
	cat := catalog.Default()

	snapshot, err := Load(context.Background(), src, cat, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, cat.Codes(), src.got.Indicators)
	assert.Equal(t, cat.CountryCodes(), src.got.Countries)
	assert.Equal(t, 1999, src.got.Start)
	assert.Equal(t, 2022, src.got.End)

	assert.Equal(t, []Observation{
		{Country: "AT", Year: 2000, Indicator: "Total Population", Value: 1},
		{Country: "AT", Year: 2001, Indicator: "Total Population", Value: 2},
		{Country: "BE", Year: 2000, Indicator: "Total Population", Value: 10},
		{Country: "BE", Year: 2000, Indicator: "Exports (USD)", Value: 5},
	}, snapshot.Observations())
	assert.Equal(t, []int{2000, 2001}, snapshot.Years())
	assert.Equal(t, []string{"AT", "BE"}, snapshot.Countries())
	assert.True(t, snapshot.HasYear(2001))
	assert.False(t, snapshot.HasYear(1999))
}

func TestLoadFailureAborts(t *testing.T) {
	providerErr := errors.New("connection refused")
	src := &fakeSource{err: providerErr}

	snapshot, err := Load(context.Background(), src, catalog.Default(), discardLogger())
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "loading observations")
}

func TestLoadFromCSVFixture(t *testing.T) {
	src := NewSource(models.GetFixturePath(t, "observations.csv"), 0, discardLogger())
	require.IsType(t, &CSVSource{}, src)

	snapshot, err := Load(context.Background(), src, catalog.Default(), discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 404, snapshot.Len())
	assert.Equal(t, []int{1999, 2000, 2001}, snapshot.Years())
	assert.Len(t, snapshot.Countries(), 27)
	assert.Contains(t, snapshot.Source(), "observations.csv")

	first := snapshot.Observations()[0]
	assert.Equal(t, Observation{Country: "AT", Year: 1999, Indicator: "Total Population", Value: 8040000}, first)

	for _, o := range snapshot.Observations() {
		if o.Country == "MT" && o.Year == 1999 {
			assert.NotEqual(t, "Life Expectancy (Years)", o.Indicator)
		}
	}
}

func TestSnapshotOrderingIsCountryThenYear(t *testing.T) {
	src := NewSource(models.GetFixturePath(t, "observations.csv"), 0, discardLogger())
	snapshot, err := Load(context.Background(), src, catalog.Default(), discardLogger())
	require.NoError(t, err)

	obs := snapshot.Observations()
	for i := 1; i < len(obs); i++ {
		prev, cur := obs[i-1], obs[i]
		if prev.Country == cur.Country {
			assert.LessOrEqual(t, prev.Year, cur.Year)
		} else {
			assert.Less(t, prev.Country, cur.Country)
		}
	}
}

func TestSnapshotAccessorsReturnCopies(t *testing.T) {
	snapshot := NewSnapshot([]Observation{{Country: "AT", Year: 2000, Indicator: "GDP (USD)", Value: 1}}, "test")

	obs := snapshot.Observations()
	obs[0].Value = 99
	assert.Equal(t, 1.0, snapshot.Observations()[0].Value)

	years := snapshot.Years()
	years[0] = 1
	assert.Equal(t, []int{2000}, snapshot.Years())
}

func TestWriteCSVRoundTrip(t *testing.T) {
	cat := catalog.Default()
	original := NewSnapshot([]Observation{
		{Country: "AT", Year: 2000, Indicator: "Total Population", Value: 8011566},
		{Country: "AT", Year: 2000, Indicator: "Inflation (Annual %)", Value: 1.25},
		{Country: "DE", Year: 2001, Indicator: "GDP (USD)", Value: 1.9e12},
	}, "test")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, original, cat))
	assert.Contains(t, buf.String(), "country,year,indicator_code,indicator,value")

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	reloaded, err := Load(context.Background(), &CSVSource{Path: path}, cat, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, original.Observations(), reloaded.Observations())
}

func TestCSVSourceErrors(t *testing.T) {
	ctx := context.Background()
	req := worldbank.Request{Indicators: []string{"SP.POP.TOTL"}, Countries: []string{"AT"}, Start: 1999, End: 2022}

	t.Run("missing file", func(t *testing.T) {
		_, err := (&CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}).Fetch(ctx, req)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		require.NoError(t, os.WriteFile(path, []byte("country,year,value\nAT,2000,1\n"), 0o600))

		_, err := (&CSVSource{Path: path}).Fetch(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "indicator_code")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := (&CSVSource{Path: "unused.csv"}).Fetch(cancelled, req)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewSource(t *testing.T) {
	assert.True(t, IsRemote("https://api.worldbank.org/v2"))
	assert.True(t, IsRemote("http://localhost:8080"))
	assert.False(t, IsRemote("testdata/observations.csv"))

	remote := NewSource("https://api.worldbank.org/v2", 0, discardLogger())
	assert.IsType(t, &worldbank.Client{}, remote)
	assert.Equal(t, "https://api.worldbank.org/v2", describe(remote))
}
