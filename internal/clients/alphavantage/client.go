// Package alphavantage provides a client for the AlphaVantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

const (
	DefaultBaseURL = "https://www.alphavantage.co/query"
	DefaultTimeout = 10 * time.Second

	// DefaultMinInterval spaces outbound calls for the free tier, which
	// allows roughly two calls per minute.
	DefaultMinInterval = 30 * time.Second

	// DefaultCacheWindow is how long a fetched value stays valid.
	DefaultCacheWindow = 30 * time.Second
)

// Client implements the MarketDataClient interface. All lookups go through a
// short-lived cache first; misses wait on a shared rate limiter before the
// network call, so concurrent callers are serialized to one request per
// MinInterval while cache hits skip the limiter entirely.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	cache      *memoryCache
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMinInterval sets the minimum spacing between outbound calls
func WithMinInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithCacheWindow sets the cache validity window
func WithCacheWindow(window time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = newMemoryCache(window)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new AlphaVantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(DefaultMinInterval), 1),
		cache:   newMemoryCache(DefaultCacheWindow),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Function   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("AlphaVantage API error: %s (status: %d, function: %s)", e.Message, e.StatusCode, e.Function)
}

// get performs a rate-limited GET request and decodes the JSON body into a
// generic map. AlphaVantage reports throttling inside a 200 response via a
// "Note" field, so that is checked here as well.
func (c *Client) get(ctx context.Context, function string, params url.Values) (map[string]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("function", function)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("function", function).Msg("AlphaVantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Function:   function,
		}
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if note, ok := payload["Note"]; ok {
		return nil, &APIError{
			StatusCode: http.StatusTooManyRequests,
			Message:    strings.Trim(string(note), `"`),
			Function:   function,
		}
	}

	return payload, nil
}

// parseFloat tolerates AlphaVantage's string-encoded numbers, including the
// trailing percent sign on change values.
func parseFloat(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// GetQuote retrieves the current quote for a symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	key := cacheKey("quote", symbol, "")
	if cached, ok := c.cache.get(key); ok {
		c.logger.Debug().Str("symbol", symbol).Msg("Quote served from cache")
		return cached.(*models.Quote), nil
	}

	params := url.Values{}
	params.Set("symbol", symbol)

	payload, err := c.get(ctx, "GLOBAL_QUOTE", params)
	if err != nil {
		return nil, err
	}

	raw, ok := payload["Global Quote"]
	if !ok {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	quote := &models.Quote{
		Symbol:        symbol,
		Price:         parseFloat(fields["05. price"]),
		Change:        parseFloat(fields["09. change"]),
		ChangePercent: parseFloat(fields["10. change percent"]),
		LatestDay:     fields["07. latest trading day"],
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(fields["06. volume"]), 10, 64); err == nil {
		quote.Volume = v
	}

	c.cache.put(key, quote)
	return quote, nil
}

// dailySeries fetches and parses the TIME_SERIES_DAILY payload.
func (c *Client) dailySeries(ctx context.Context, symbol string) (map[string]map[string]string, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	payload, err := c.get(ctx, "TIME_SERIES_DAILY", params)
	if err != nil {
		return nil, err
	}

	raw, ok := payload["Time Series (Daily)"]
	if !ok {
		return nil, fmt.Errorf("no time series data for %s", symbol)
	}

	var series map[string]map[string]string
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, fmt.Errorf("failed to decode time series: %w", err)
	}

	return series, nil
}

func barFromFields(date string, fields map[string]string) models.DailyBar {
	bar := models.DailyBar{
		Date:  date,
		Open:  parseFloat(fields["1. open"]),
		High:  parseFloat(fields["2. high"]),
		Low:   parseFloat(fields["3. low"]),
		Close: parseFloat(fields["4. close"]),
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(fields["5. volume"]), 10, 64); err == nil {
		bar.Volume = v
	}
	return bar
}

// GetDailySeries retrieves the end-of-day series, most recent day first
func (c *Client) GetDailySeries(ctx context.Context, symbol string) ([]models.DailyBar, error) {
	key := cacheKey("daily", symbol, "")
	if cached, ok := c.cache.get(key); ok {
		c.logger.Debug().Str("symbol", symbol).Msg("Daily series served from cache")
		return cached.([]models.DailyBar), nil
	}

	series, err := c.dailySeries(ctx, symbol)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	bars := make([]models.DailyBar, 0, len(dates))
	for _, date := range dates {
		bars = append(bars, barFromFields(date, series[date]))
	}

	c.cache.put(key, bars)
	return bars, nil
}

// GetHistoricalPrice resolves the bar for the first trading day on or after
// the target date, falling back to the most recent available day when the
// target is past the end of the series. Returns nil when no data exists.
func (c *Client) GetHistoricalPrice(ctx context.Context, symbol, targetDate string) (*models.HistoricalPrice, error) {
	key := cacheKey("historical", symbol, targetDate)
	if cached, ok := c.cache.get(key); ok {
		c.logger.Debug().Str("symbol", symbol).Str("date", targetDate).Msg("Historical price served from cache")
		return cached.(*models.HistoricalPrice), nil
	}

	series, err := c.dailySeries(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, nil
	}

	dates := make([]string, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	// First trading day on or after the target. ISO dates compare correctly
	// as strings, which is how the series is keyed.
	closest := ""
	for _, date := range dates {
		if date >= targetDate {
			closest = date
			break
		}
	}
	if closest == "" {
		closest = dates[len(dates)-1]
	}

	fields := series[closest]
	bar := barFromFields(closest, fields)
	result := &models.HistoricalPrice{
		Date:   bar.Date,
		Open:   bar.Open,
		High:   bar.High,
		Low:    bar.Low,
		Close:  bar.Close,
		Volume: bar.Volume,
	}

	c.cache.put(key, result)
	return result, nil
}

// SearchSymbols finds symbols matching a keyword
func (c *Client) SearchSymbols(ctx context.Context, keyword string) ([]models.SymbolMatch, error) {
	key := cacheKey("search", keyword, "")
	if cached, ok := c.cache.get(key); ok {
		return cached.([]models.SymbolMatch), nil
	}

	params := url.Values{}
	params.Set("keywords", keyword)

	payload, err := c.get(ctx, "SYMBOL_SEARCH", params)
	if err != nil {
		return nil, err
	}

	matches := []models.SymbolMatch{}
	if raw, ok := payload["bestMatches"]; ok {
		var rows []map[string]string
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode search results: %w", err)
		}
		for _, row := range rows {
			matches = append(matches, models.SymbolMatch{
				Symbol:   row["1. symbol"],
				Name:     row["2. name"],
				Type:     row["3. type"],
				Region:   row["4. region"],
				Currency: row["8. currency"],
			})
		}
	}

	c.cache.put(key, matches)
	return matches, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
