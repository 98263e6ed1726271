package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/status-im/market-gateway/config"
	"github.com/status-im/market-gateway/metrics"
)

const (
	coinsListPath  = "coins/list"
	categoriesPath = "coins/categories/list"
	marketsPath    = "coins/markets"
	pingPath       = "ping"

	// Upstream page size cap. One markets call at this size is the full
	// snapshot for this gateway's scope.
	marketsPageSize = "250"

	// Error bodies are truncated to keep log lines and error values bounded
	maxErrorBodyLength = 512
)

//go:generate mockgen -destination=mocks/api_client.go . APIClient

// APIClient defines the upstream operations the gateway depends on
type APIClient interface {
	// ListCoins fetches the full coin listing (id, symbol, name)
	ListCoins(ctx context.Context) ([]Coin, error)
	// ListCategories fetches the full category listing
	ListCategories(ctx context.Context) ([]Category, error)
	// ListMarkets fetches a single-currency market snapshot, optionally
	// filtered by coin ids or one category. If both filters are given,
	// ids take precedence and category is not sent upstream.
	ListMarkets(ctx context.Context, currency string, ids []string, category string) ([]MarketRow, error)
	// Ping probes upstream availability
	Ping(ctx context.Context) error
}

// Client implements APIClient against the CoinGecko HTTP API. Responses are
// decoded into typed structs here; raw JSON never crosses this boundary.
type Client struct {
	settings   config.CoingeckoSettings
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a CoinGecko API client
func NewClient(settings config.CoingeckoSettings, limits config.APIKeyConfig) *Client {
	return &Client{
		settings: settings,
		httpClient: &http.Client{
			Timeout: settings.Timeout,
		},
		limiter: newLimiter(limits, settings.APIKey != ""),
	}
}

// ListCoins fetches the full coin listing
func (c *Client) ListCoins(ctx context.Context) ([]Coin, error) {
	rb := NewRequestBuilder(c.settings.BaseURL, coinsListPath).
		WithApiKey(c.settings.APIKey)

	body, err := c.execute(ctx, rb, metrics.NewMetricsWriter(metrics.OperationCoinsList))
	if err != nil {
		return nil, err
	}

	var coins []Coin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, fmt.Errorf("coingecko: decoding coins list: %w", err)
	}

	log.Printf("CoinGecko: fetched %d coins", len(coins))
	return coins, nil
}

// ListCategories fetches the full category listing
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	rb := NewRequestBuilder(c.settings.BaseURL, categoriesPath).
		WithApiKey(c.settings.APIKey)

	body, err := c.execute(ctx, rb, metrics.NewMetricsWriter(metrics.OperationCategories))
	if err != nil {
		return nil, err
	}

	var categories []Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("coingecko: decoding categories list: %w", err)
	}

	log.Printf("CoinGecko: fetched %d categories", len(categories))
	return categories, nil
}

// ListMarkets fetches a single-currency market snapshot
func (c *Client) ListMarkets(ctx context.Context, currency string, ids []string, category string) ([]MarketRow, error) {
	// Explicit filter precedence: ids win over category
	if len(ids) > 0 {
		category = ""
	}

	rb := NewRequestBuilder(c.settings.BaseURL, marketsPath).
		WithCurrency(currency).
		WithOrder("market_cap_desc").
		WithIDs(ids).
		WithCategory(category).
		With("per_page", marketsPageSize).
		With("sparkline", "false").
		WithApiKey(c.settings.APIKey)

	body, err := c.execute(ctx, rb, metrics.NewMetricsWriter(metrics.OperationMarkets))
	if err != nil {
		return nil, err
	}

	var rows []MarketRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("coingecko: decoding markets response: %w", err)
	}

	log.Printf("CoinGecko: fetched %d market rows for %s", len(rows), currency)
	return rows, nil
}

// Ping probes upstream availability
func (c *Client) Ping(ctx context.Context) error {
	rb := NewRequestBuilder(c.settings.BaseURL, pingPath).
		WithApiKey(c.settings.APIKey)

	_, err := c.execute(ctx, rb, metrics.NewMetricsWriter(metrics.OperationPing))
	return err
}

// execute runs one upstream request and normalizes its outcome: timeouts
// become ErrUpstreamTimeout, non-2xx responses become *UpstreamError.
// Nothing is retried, a 429 propagates to the caller.
func (c *Client) execute(ctx context.Context, rb *RequestBuilder, writer *metrics.MetricsWriter) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("coingecko: rate limiter wait: %w", err)
	}

	req, err := rb.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("coingecko: building request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	writer.ObserveDuration(start)

	if err != nil {
		if isTimeout(err) {
			writer.OnRequest(metrics.StatusTimeout)
			return nil, ErrUpstreamTimeout
		}
		writer.OnRequest(metrics.StatusError)
		return nil, fmt.Errorf("coingecko: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		writer.OnRequest(metrics.StatusError)
		return nil, fmt.Errorf("coingecko: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusTooManyRequests {
			writer.OnRequest(metrics.StatusRateLimited)
			log.Printf("CoinGecko: rate limited, retry after %q", resp.Header.Get("Retry-After"))
		} else {
			writer.OnRequest(metrics.StatusError)
		}
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: truncate(string(body), maxErrorBodyLength),
		}
	}

	writer.OnRequest(metrics.StatusSuccess)
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
