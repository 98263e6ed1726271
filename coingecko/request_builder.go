package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Demo API keys are carried in a request header. An absent key is not an
// error, keyless requests just face stricter upstream rate limits.
const apiKeyHeader = "x-cg-demo-api-key"

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// RequestBuilder implements the Builder pattern for CoinGecko API requests
type RequestBuilder struct {
	baseURL   string
	apiPath   string
	params    map[string]string
	apiKey    string
	userAgent string
	headers   map[string]string
}

// NewRequestBuilder creates a new request builder for a CoinGecko endpoint
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:   baseURL,
		apiPath:   apiPath,
		params:    make(map[string]string),
		headers:   make(map[string]string),
		userAgent: "Mozilla/5.0 Market-Gateway",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a custom parameter to the URL query
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	rb.params[key] = value
	return rb
}

// WithCurrency adds the vs_currency parameter
func (rb *RequestBuilder) WithCurrency(currency string) *RequestBuilder {
	if currency != "" {
		rb.params["vs_currency"] = currency
	}
	return rb
}

// WithIDs adds the ids parameter (comma-separated list of coin IDs)
func (rb *RequestBuilder) WithIDs(ids []string) *RequestBuilder {
	if len(ids) > 0 {
		rb.params["ids"] = strings.Join(ids, ",")
	}
	return rb
}

// WithCategory adds the category parameter
func (rb *RequestBuilder) WithCategory(category string) *RequestBuilder {
	if category != "" {
		rb.params["category"] = category
	}
	return rb
}

// WithOrder adds the ordering parameter
func (rb *RequestBuilder) WithOrder(order string) *RequestBuilder {
	if order != "" {
		rb.params["order"] = order
	}
	return rb
}

// WithApiKey sets the demo API key attached as a request header
func (rb *RequestBuilder) WithApiKey(apiKey string) *RequestBuilder {
	if apiKey != "" {
		rb.apiKey = apiKey
	}
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *RequestBuilder) BuildURL() string {
	fullPath := buildURL(rb.baseURL, rb.apiPath)

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	finalURL := fullPath
	queryString := query.Encode()
	if queryString != "" {
		finalURL = fmt.Sprintf("%s?%s", finalURL, queryString)
	}

	return finalURL
}

// Build creates an http.Request bound to the given context
func (rb *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)

	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	if rb.apiKey != "" {
		req.Header.Set(apiKeyHeader, rb.apiKey)
	}

	return req, nil
}
