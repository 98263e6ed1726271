package coingecko

import (
	"math"

	"golang.org/x/time/rate"

	"github.com/status-im/market-gateway/config"
)

// Defaults in requests per minute, used when config is not provided.
// Both match CoinGecko's published demo-tier and keyless budgets.
const (
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

// newLimiter builds the client-side rate limiter for the configured key.
// Limiting locally keeps the gateway under the upstream budget; it does not
// replace upstream 429 handling, which is still surfaced to the caller.
func newLimiter(cfg config.APIKeyConfig, hasAPIKey bool) *rate.Limiter {
	settings := cfg.NoKey
	defaultRPM := defaultNoKeyRPM
	if hasAPIKey {
		settings = cfg.Demo
		defaultRPM = defaultDemoRPM
	}

	rpm := settings.RateLimitPerMinute
	if rpm <= 0 {
		rpm = defaultRPM
	}
	limit := rate.Limit(float64(rpm) / 60.0)

	burst := settings.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}

	return rate.NewLimiter(limit, burst)
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
