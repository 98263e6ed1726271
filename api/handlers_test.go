package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/market-gateway/auth"
	"github.com/status-im/market-gateway/coingecko"
	mock_coingecko "github.com/status-im/market-gateway/coingecko/mocks"
	"github.com/status-im/market-gateway/config"
	"github.com/status-im/market-gateway/markets"
)

func testConfig() *config.Config {
	return &config.Config{
		Port: "0",
		API:  config.APISettings{Version: "1.0.0", Title: "Cryptocurrency Market API"},
		Auth: config.AuthSettings{
			SecretKey:    "test-secret",
			TokenTTL:     30 * time.Minute,
			DemoUsername: "demo",
			DemoPassword: "demo123",
		},
		Pagination: config.PaginationSettings{DefaultPerPage: 10, MaxPerPage: 100},
	}
}

type testStack struct {
	server *httptest.Server
	client *mock_coingecko.MockAPIClient
	tokens *auth.Service
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mock_coingecko.NewMockAPIClient(ctrl)

	tokens, err := auth.NewService(testConfig().Auth)
	require.NoError(t, err)

	apiServer := New(testConfig(), tokens, client, markets.NewAggregator(client))
	server := httptest.NewServer(apiServer.Handler())
	t.Cleanup(server.Close)

	return &testStack{server: server, client: client, tokens: tokens}
}

func (ts *testStack) login(t *testing.T) string {
	t.Helper()
	token, err := ts.tokens.Issue("demo", "demo123")
	require.NoError(t, err)
	return token
}

func (ts *testStack) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodePage(t *testing.T, resp *http.Response) (data []json.RawMessage, page, perPage, total int) {
	t.Helper()
	defer resp.Body.Close()

	var body struct {
		Data    []json.RawMessage `json:"data"`
		Page    int               `json:"page"`
		PerPage int               `json:"per_page"`
		Total   int               `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Data, body.Page, body.PerPage, body.Total
}

func coinFixture(n int) []coingecko.Coin {
	coins := make([]coingecko.Coin, n)
	for i := range coins {
		coins[i] = coingecko.Coin{
			ID:     fmt.Sprintf("coin-%02d", i+1),
			Symbol: fmt.Sprintf("c%02d", i+1),
			Name:   fmt.Sprintf("Coin %02d", i+1),
		}
	}
	return coins
}

func TestLogin(t *testing.T) {
	ts := newTestStack(t)

	resp, err := http.Post(ts.server.URL+"/auth/login", "application/json",
		strings.NewReader(`{"username":"demo","password":"demo123"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "bearer", body.TokenType)

	principal, err := ts.tokens.Verify(body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "demo", principal)
}

func TestLogin_Rejections(t *testing.T) {
	ts := newTestStack(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"wrong password", `{"username":"demo","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"admin","password":"demo123"}`, http.StatusUnauthorized},
		{"missing fields", `{"username":"demo"}`, http.StatusBadRequest},
		{"malformed body", `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.server.URL+"/auth/login", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestBearer_MissingHeaderIs403(t *testing.T) {
	ts := newTestStack(t)

	resp := ts.get(t, "/v1/coins/", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBearer_InvalidTokenIs401(t *testing.T) {
	ts := newTestStack(t)

	resp := ts.get(t, "/v1/coins/", "invalid")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBearer_ExpiredTokenIs401(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.TokenTTL = -time.Minute

	ctrl := gomock.NewController(t)
	client := mock_coingecko.NewMockAPIClient(ctrl)
	tokens, err := auth.NewService(cfg.Auth)
	require.NoError(t, err)

	server := httptest.NewServer(New(cfg, tokens, client, markets.NewAggregator(client)).Handler())
	defer server.Close()

	token, err := tokens.Issue("demo", "demo123")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/v1/coins/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCoinsList_Pagination(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().ListCoins(gomock.Any()).Return(coinFixture(25), nil)

	resp := ts.get(t, "/v1/coins/?page_num=2&per_page=10", ts.login(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, page, perPage, total := decodePage(t, resp)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, perPage)
	assert.Equal(t, 25, total)
	require.Len(t, data, 10)

	var first, last coingecko.Coin
	require.NoError(t, json.Unmarshal(data[0], &first))
	require.NoError(t, json.Unmarshal(data[9], &last))
	assert.Equal(t, "coin-11", first.ID)
	assert.Equal(t, "coin-20", last.ID)
}

func TestCoinsList_PastEndIsEmpty(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().ListCoins(gomock.Any()).Return(coinFixture(25), nil)

	resp := ts.get(t, "/v1/coins/?page_num=4&per_page=10", ts.login(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, _, _, total := decodePage(t, resp)
	assert.Empty(t, data)
	assert.Equal(t, 25, total)
}

func TestCoinsList_HugePageNumIsEmptyPage(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().ListCoins(gomock.Any()).Return(coinFixture(25), nil)

	resp := ts.get(t, fmt.Sprintf("/v1/coins/?page_num=%d", math.MaxInt64), ts.login(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, page, _, total := decodePage(t, resp)
	assert.Empty(t, data)
	assert.Equal(t, math.MaxInt64, page)
	assert.Equal(t, 25, total)
}

func TestCoinsList_ExplicitZeroPerPageClampsToOne(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().ListCoins(gomock.Any()).Return(coinFixture(25), nil)

	resp := ts.get(t, "/v1/coins/?per_page=0", ts.login(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, _, perPage, total := decodePage(t, resp)
	assert.Equal(t, 1, perPage)
	assert.Len(t, data, 1)
	assert.Equal(t, 25, total)
}

func TestCoinsList_NonNumericParamsRejected(t *testing.T) {
	ts := newTestStack(t)
	token := ts.login(t)

	for _, path := range []string{
		"/v1/coins/?page_num=abc",
		"/v1/coins/?per_page=abc",
		"/v1/coins/?page_num=1.5",
	} {
		resp := ts.get(t, path, token)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestCoinsList_OutOfRangeParamsClamp(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().ListCoins(gomock.Any()).Return(coinFixture(25), nil).Times(2)
	token := ts.login(t)

	// per_page above the max clamps to max
	resp := ts.get(t, "/v1/coins/?per_page=500", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _, perPage, _ := decodePage(t, resp)
	assert.Equal(t, 100, perPage)
	assert.Len(t, data, 25)

	// page_num below 1 clamps to 1
	resp = ts.get(t, "/v1/coins/?page_num=-3&per_page=5", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, page, _, _ := decodePage(t, resp)
	assert.Equal(t, 1, page)
}

func TestCategoriesList(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().ListCategories(gomock.Any()).Return([]coingecko.Category{
		{ID: "defi", Name: "DeFi"},
		{ID: "nft", Name: "NFT"},
	}, nil)

	resp := ts.get(t, "/v1/coins/categories", ts.login(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, page, perPage, total := decodePage(t, resp)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)
	assert.Equal(t, 2, total)
	require.Len(t, data, 2)

	var category coingecko.Category
	require.NoError(t, json.Unmarshal(data[0], &category))
	assert.Equal(t, "defi", category.ID)
}

func TestCoinsMarket_MergedRecords(t *testing.T) {
	ts := newTestStack(t)

	price := func(v float64) *float64 { return &v }
	rank := func(v int) *int { return &v }

	ts.client.EXPECT().ListMarkets(gomock.Any(), markets.CurrencyINR, []string{"bitcoin", "ethereum"}, "").
		Return([]coingecko.MarketRow{
			{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: price(5000000), MarketCapRank: rank(1)},
			{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: price(300000), MarketCapRank: rank(2)},
		}, nil)
	ts.client.EXPECT().ListMarkets(gomock.Any(), markets.CurrencyCAD, []string{"bitcoin", "ethereum"}, "").
		Return([]coingecko.MarketRow{
			{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: price(80000), MarketCapRank: rank(1)},
			{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: price(4500), MarketCapRank: rank(2)},
		}, nil)

	resp := ts.get(t, "/v1/coins/market?coin_ids=bitcoin,ethereum", ts.login(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, _, _, total := decodePage(t, resp)
	assert.Equal(t, 2, total)
	require.Len(t, data, 2)

	var record markets.MarketRecord
	require.NoError(t, json.Unmarshal(data[0], &record))
	assert.Equal(t, "bitcoin", record.ID)
	require.NotNil(t, record.CurrentPriceINR)
	assert.Equal(t, 5000000.0, *record.CurrentPriceINR)
	require.NotNil(t, record.CurrentPriceCAD)
	assert.Equal(t, 80000.0, *record.CurrentPriceCAD)

	// Absent fields serialize as explicit nulls
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data[0], &raw))
	assert.Contains(t, raw, "market_cap_inr")
	assert.Nil(t, raw["market_cap_inr"])
}

func TestCoinsMarket_UpstreamFailureIsAllOrNothing(t *testing.T) {
	ts := newTestStack(t)

	ts.client.EXPECT().ListMarkets(gomock.Any(), markets.CurrencyINR, gomock.Nil(), "").
		Return([]coingecko.MarketRow{{ID: "bitcoin"}}, nil)
	ts.client.EXPECT().ListMarkets(gomock.Any(), markets.CurrencyCAD, gomock.Nil(), "").
		Return(nil, &coingecko.UpstreamError{Status: 429, Message: "Throttled"})

	resp := ts.get(t, "/v1/coins/market", ts.login(t))
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestUpstreamErrorMapping(t *testing.T) {
	ts := newTestStack(t)
	token := ts.login(t)

	ts.client.EXPECT().ListCoins(gomock.Any()).Return(nil, coingecko.ErrUpstreamTimeout)
	resp := ts.get(t, "/v1/coins/", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)

	ts.client.EXPECT().ListCoins(gomock.Any()).Return(nil, &coingecko.UpstreamError{Status: 500, Message: "boom"})
	resp = ts.get(t, "/v1/coins/", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().Ping(gomock.Any()).Return(nil)

	resp := ts.get(t, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.CoingeckoStatus)
	assert.Equal(t, "1.0.0", body.Version)
}

func TestHealth_UnreachableUpstreamDegrades(t *testing.T) {
	ts := newTestStack(t)
	ts.client.EXPECT().Ping(gomock.Any()).Return(&coingecko.UpstreamError{Status: 500, Message: "down"})

	resp := ts.get(t, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "unhealthy", body.CoingeckoStatus)
}

func TestVersion(t *testing.T) {
	ts := newTestStack(t)

	resp := ts.get(t, "/health/version", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "Cryptocurrency Market API", body["title"])
}
