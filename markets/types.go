package markets

// Supported quote currencies. Every merged record carries one field set
// per currency.
const (
	CurrencyINR = "inr"
	CurrencyCAD = "cad"
)

// MarketRecord is one coin's merged market snapshot across both supported
// currencies. Per-currency fields are pointers so a currency absent for a
// coin serializes as null, never omitted.
type MarketRecord struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPriceINR          *float64 `json:"current_price_inr"`
	CurrentPriceCAD          *float64 `json:"current_price_cad"`
	MarketCapINR             *float64 `json:"market_cap_inr"`
	MarketCapCAD             *float64 `json:"market_cap_cad"`
	TotalVolumeINR           *float64 `json:"total_volume_inr"`
	TotalVolumeCAD           *float64 `json:"total_volume_cad"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCapRank            *int     `json:"market_cap_rank"`
}
