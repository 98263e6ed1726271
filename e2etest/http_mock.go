package e2etest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/status-im/market-gateway/coingecko"
)

// MockCoinGecko is an httptest-backed stand-in for the CoinGecko API.
// Market data is held per currency and filtered by ids/category the way
// the real endpoint filters, so the gateway can be exercised end to end.
type MockCoinGecko struct {
	server *httptest.Server

	mu           sync.RWMutex
	coins        []coingecko.Coin
	categories   []coingecko.Category
	markets      map[string][]marketRow
	failStatus   map[string]int // path prefix -> forced status
	lastAPIKeys  []string
	requestCount int
}

// marketRow mirrors the upstream markets payload shape
type marketRow struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Category                 string   `json:"-"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

func NewMockCoinGecko() *MockCoinGecko {
	ms := &MockCoinGecko{
		markets:    make(map[string][]marketRow),
		failStatus: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/coins/list", ms.handleCoinsList)
	mux.HandleFunc("/coins/categories/list", ms.handleCategoriesList)
	mux.HandleFunc("/coins/markets", ms.handleMarkets)
	mux.HandleFunc("/ping", ms.handlePing)

	ms.server = httptest.NewServer(mux)
	return ms
}

func (ms *MockCoinGecko) URL() string { return ms.server.URL }

func (ms *MockCoinGecko) Close() { ms.server.Close() }

// SetCoins replaces the coin listing dataset
func (ms *MockCoinGecko) SetCoins(coins []coingecko.Coin) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.coins = coins
}

// SetCategories replaces the category listing dataset
func (ms *MockCoinGecko) SetCategories(categories []coingecko.Category) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.categories = categories
}

// AddMarketRow registers one market entry for a currency
func (ms *MockCoinGecko) AddMarketRow(currency, id, symbol, name, category string, price, cap, volume float64, rank int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	change := 1.5
	ms.markets[currency] = append(ms.markets[currency], marketRow{
		ID:                       id,
		Symbol:                   symbol,
		Name:                     name,
		Category:                 category,
		CurrentPrice:             &price,
		MarketCap:                &cap,
		MarketCapRank:            &rank,
		TotalVolume:              &volume,
		PriceChangePercentage24h: &change,
	})
}

// FailWith forces a status code for requests whose path has the prefix.
// Markets failures can target one currency via FailMarketsFor.
func (ms *MockCoinGecko) FailWith(pathPrefix string, status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failStatus[pathPrefix] = status
}

// FailMarketsFor forces a status code only for markets requests in the
// given currency
func (ms *MockCoinGecko) FailMarketsFor(currency string, status int) {
	ms.FailWith("/coins/markets?"+currency, status)
}

// APIKeysSeen returns the API key header values observed so far
func (ms *MockCoinGecko) APIKeysSeen() []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return append([]string{}, ms.lastAPIKeys...)
}

// RequestCount returns the number of requests served
func (ms *MockCoinGecko) RequestCount() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requestCount
}

func (ms *MockCoinGecko) observe(r *http.Request) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requestCount++
	if key := r.Header.Get("x-cg-demo-api-key"); key != "" {
		ms.lastAPIKeys = append(ms.lastAPIKeys, key)
	}
}

func (ms *MockCoinGecko) forcedStatus(path, currency string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if status, ok := ms.failStatus["/coins/markets?"+currency]; ok && currency != "" {
		return status
	}
	if status, ok := ms.failStatus[path]; ok {
		return status
	}
	return 0
}

func (ms *MockCoinGecko) handleCoinsList(w http.ResponseWriter, r *http.Request) {
	ms.observe(r)
	if status := ms.forcedStatus("/coins/list", ""); status != 0 {
		http.Error(w, "forced failure", status)
		return
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()
	writeJSON(w, ms.coins)
}

func (ms *MockCoinGecko) handleCategoriesList(w http.ResponseWriter, r *http.Request) {
	ms.observe(r)
	if status := ms.forcedStatus("/coins/categories/list", ""); status != 0 {
		http.Error(w, "forced failure", status)
		return
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()
	writeJSON(w, ms.categories)
}

func (ms *MockCoinGecko) handleMarkets(w http.ResponseWriter, r *http.Request) {
	ms.observe(r)

	currency := r.URL.Query().Get("vs_currency")
	if status := ms.forcedStatus("/coins/markets", currency); status != 0 {
		http.Error(w, "forced failure", status)
		return
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	rows := ms.markets[currency]

	if idsParam := r.URL.Query().Get("ids"); idsParam != "" {
		wanted := make(map[string]bool)
		for _, id := range strings.Split(idsParam, ",") {
			wanted[id] = true
		}
		rows = filterRows(rows, func(row marketRow) bool { return wanted[row.ID] })
	} else if category := r.URL.Query().Get("category"); category != "" {
		rows = filterRows(rows, func(row marketRow) bool { return row.Category == category })
	}

	writeJSON(w, rows)
}

func (ms *MockCoinGecko) handlePing(w http.ResponseWriter, r *http.Request) {
	ms.observe(r)
	if status := ms.forcedStatus("/ping", ""); status != 0 {
		http.Error(w, "forced failure", status)
		return
	}
	writeJSON(w, map[string]string{"gecko_says": "(V3) To the Moon!"})
}

func filterRows(rows []marketRow, keep func(marketRow) bool) []marketRow {
	filtered := make([]marketRow, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
