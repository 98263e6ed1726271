package coingecko

import (
	"errors"
	"fmt"
)

// ErrUpstreamTimeout is returned when an upstream call exceeds the
// configured timeout
var ErrUpstreamTimeout = errors.New("coingecko: upstream request timed out")

// UpstreamError represents a non-2xx response from the CoinGecko API.
// A 429 status means the request was rate limited upstream; it is not
// retried here, the caller decides how to surface it.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("coingecko: upstream returned status %d: %s", e.Status, e.Message)
}
