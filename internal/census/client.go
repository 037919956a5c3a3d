// Package census fetches state-level demographic baselines from the Census
// Bureau ACS API, converting raw counts to percentages and caching results
// by (state FIPS, year).
package census

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/brandpulse/audience-cli/internal/model"
	"github.com/brandpulse/audience-cli/internal/store"
)

const defaultBaseURL = "https://api.census.gov/data"

// acsVariables maps ACS variable codes to semantic names. Codes are from the
// B02001 (race) and B03003 (Hispanic origin) tables.
var acsVariables = map[string]string{
	"B02001_001E": "total_population",
	"B02001_002E": "white_alone",
	"B02001_003E": "black_alone",
	"B02001_005E": "asian_alone",
	"B02001_006E": "hawaiian_pacific_islander_alone",
	"B02001_008E": "two_or_more_races",
	"B03003_003E": "hispanic_latino",
}

// acsVariableOrder keeps the "get" query parameter stable across requests.
var acsVariableOrder = []string{
	"B02001_001E",
	"B02001_002E",
	"B02001_003E",
	"B02001_005E",
	"B02001_006E",
	"B02001_008E",
	"B03003_003E",
}

// categoryCounts maps each demographic category to its semantic count name.
var categoryCounts = map[model.Category]string{
	model.CategoryWhite:           "white_alone",
	model.CategoryHispanicLatino:  "hispanic_latino",
	model.CategoryBlack:           "black_alone",
	model.CategoryAsian:           "asian_alone",
	model.CategoryHawaiianPacific: "hawaiian_pacific_islander_alone",
	model.CategoryTwoOrMoreRaces:  "two_or_more_races",
}

// Client fetches demographics from the ACS API with a (fips, year)-keyed
// cache in front. A nil result from the public methods means "absent":
// transport errors, malformed responses, and missing credentials degrade to
// absent with a log entry, never an error to the caller.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      store.CacheStore
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the ACS base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache sets the backing cache store.
func WithCache(cs store.CacheStore) Option {
	return func(c *Client) { c.cache = cs }
}

// NewClient creates a census client. The cache defaults to an in-memory
// store; the ACS rate limit is conservative (2 req/s).
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(2, 4),
		cache:      store.NewMemory(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns demographics for a state name or abbreviation, or nil when
// the region is unmappable or the upstream call fails.
func (c *Client) Fetch(ctx context.Context, region string, year int) *model.StateDemographics {
	fips, ok := MapRegion(region)
	if !ok {
		zap.L().Warn("could not map region to FIPS code", zap.String("region", region))
		return nil
	}
	return c.FetchFIPS(ctx, fips, year)
}

// FetchFIPS returns demographics for a state FIPS code, or nil on failure.
// Results are memoized in the cache store; a repeated call with the same
// (fips, year) does not hit the network.
func (c *Client) FetchFIPS(ctx context.Context, fips string, year int) *model.StateDemographics {
	log := zap.L().With(zap.String("state_fips", fips), zap.Int("year", year))

	if cached, ok, err := c.cache.Get(ctx, fips, year); err != nil {
		log.Warn("census cache read failed", zap.Error(err))
	} else if ok {
		log.Debug("census cache hit")
		return cached
	}

	if c.apiKey == "" {
		log.Error("census API key not configured")
		return nil
	}

	data, err := c.fetchRemote(ctx, "state:"+fips, year)
	if err != nil {
		log.Error("census fetch failed", zap.Error(err))
		return nil
	}
	data.StateFIPS = fips

	if err := c.cache.Set(ctx, fips, year, data); err != nil {
		log.Warn("census cache write failed", zap.Error(err))
	}

	log.Info("fetched census demographics", zap.String("state", data.StateName))
	return data
}

// National returns aggregated national demographics (us:1 geography), or nil
// on failure. National snapshots are not cached.
func (c *Client) National(ctx context.Context, year int) *model.StateDemographics {
	if c.apiKey == "" {
		zap.L().Error("census API key not configured")
		return nil
	}
	data, err := c.fetchRemote(ctx, "us:1", year)
	if err != nil {
		zap.L().Error("national census fetch failed", zap.Int("year", year), zap.Error(err))
		return nil
	}
	data.StateName = "National"
	return data
}

// FetchStates fetches demographics for several states, keyed by the input
// name. Unmappable or failed states are omitted from the result.
func (c *Client) FetchStates(ctx context.Context, names []string, year int) map[string]*model.StateDemographics {
	results := make(map[string]*model.StateDemographics)
	for _, name := range names {
		if data := c.Fetch(ctx, name, year); data != nil {
			results[name] = data
		}
	}
	return results
}

func (c *Client) fetchRemote(ctx context.Context, geography string, year int) (*model.StateDemographics, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "census: rate limit")
	}

	params := url.Values{
		"get": {"NAME," + strings.Join(acsVariableOrder, ",")},
		"for": {geography},
		"key": {c.apiKey},
	}
	reqURL := c.baseURL + "/" + strconv.Itoa(year) + "/acs/acs1?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "census: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "census: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("census: returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "census: read body")
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, eris.Wrap(err, "census: parse response")
	}
	if len(rows) < 2 {
		return nil, eris.New("census: unexpected response shape")
	}

	return parseACSRows(rows[0], rows[1], year), nil
}

// parseACSRows maps the header/value row pair into a snapshot. Non-numeric
// count fields default to 0 rather than aborting the parse.
func parseACSRows(headers, values []string, year int) *model.StateDemographics {
	data := &model.StateDemographics{
		Year:        year,
		RawCounts:   make(map[string]int64),
		Percentages: make(map[model.Category]float64),
	}
	if len(values) > 0 {
		data.StateName = values[0]
	}

	for i, header := range headers {
		name, known := acsVariables[header]
		if !known || i >= len(values) {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(values[i]), 10, 64)
		if err != nil {
			n = 0
		}
		data.RawCounts[name] = n
	}

	total := data.RawCounts["total_population"]
	if total <= 0 {
		return data
	}
	for category, countName := range categoryCounts {
		data.Percentages[category] = round1(float64(data.RawCounts[countName]) / float64(total) * 100)
	}
	return data
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
