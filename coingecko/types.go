package coingecko

// Coin is an upstream coin listing entry
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Category is an upstream coin category entry
type Category struct {
	ID   string `json:"category_id"`
	Name string `json:"name"`
}

// MarketRow is a single-currency market snapshot entry as returned by the
// upstream markets endpoint. Price fields are pointers: the upstream reports
// null for coins without data in the requested currency, and that null must
// survive into the merged output.
type MarketRow struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}
