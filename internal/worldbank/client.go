// Package worldbank fetches indicator series from the World Bank indicator API (v2).
package worldbank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eudash.dev/internal/logging"
)

// ErrProvider is returned when the API answers with an error payload.
var ErrProvider = errors.New("world bank api error")

const defaultPerPage = 1000

// Request selects what to fetch. Start and End are inclusive years.
type Request struct {
	Indicators []string
	Countries  []string
	Start      int
	End        int
}

// Record is one (country, year, indicator) value as returned by the provider.
type Record struct {
	Country   string
	Year      int
	Indicator string
	Value     float64
}

// Client talks to the World Bank API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	perPage    int
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPerPage sets the page size requested from the API.
func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithLogger sets the logger used for per-indicator progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API rooted at baseURL,
// e.g. "https://api.worldbank.org/v2".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		perPage:    defaultPerPage,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads every indicator of the request, one indicator at a time,
// following pagination. Observations without a value are skipped.
// Any failure aborts the whole fetch.
func (c *Client) Fetch(ctx context.Context, req Request) ([]Record, error) {
	if len(req.Indicators) == 0 || len(req.Countries) == 0 {
		return nil, errors.New("request needs at least one indicator and one country")
	}

	var records []Record
	for _, code := range req.Indicators {
		start := time.Now()
		got, err := c.fetchIndicator(ctx, code, req)
		if err != nil {
			return nil, fmt.Errorf("fetching indicator %s: %w", code, err)
		}
		logging.LogOperation(c.logger, "indicator_fetched",
			slog.String("indicator", code),
			slog.Int("records", len(got)),
			slog.Duration("duration", time.Since(start)))
		records = append(records, got...)
	}
	return records, nil
}

func (c *Client) fetchIndicator(ctx context.Context, code string, req Request) ([]Record, error) {
	var records []Record
	for page := 1; ; page++ {
		meta, rows, err := c.fetchPage(ctx, code, req, page)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			rec, ok := row.record()
			if ok {
				records = append(records, rec)
			}
		}
		if int(meta.Pages) <= page {
			return records, nil
		}
	}
}

func (c *Client) pageURL(code string, req Request, page int) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("date", fmt.Sprintf("%d:%d", req.Start, req.End))
	q.Set("per_page", strconv.Itoa(c.perPage))
	q.Set("page", strconv.Itoa(page))

	countries := make([]string, len(req.Countries))
	for i, country := range req.Countries {
		countries[i] = url.PathEscape(country)
	}

	return fmt.Sprintf("%s/country/%s/indicator/%s?%s",
		c.baseURL,
		strings.Join(countries, ";"),
		url.PathEscape(code),
		q.Encode())
}

func (c *Client) fetchPage(ctx context.Context, code string, req Request, page int) (pageMeta, []row, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(code, req, page), nil)
	if err != nil {
		return pageMeta{}, nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pageMeta{}, nil, fmt.Errorf("error downloading page %d: %w", page, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "worldbank_response_body")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pageMeta{}, nil, fmt.Errorf("error reading page %d: %w", page, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pageMeta{}, nil, fmt.Errorf("%w: unexpected status %d", ErrProvider, resp.StatusCode)
	}

	return decodePage(body)
}

// String identifies the data source in logs.
func (c *Client) String() string {
	return c.baseURL
}
