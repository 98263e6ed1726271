// Package markets merges per-currency CoinGecko market snapshots into one
// multi-currency record per coin.
package markets

import (
	"context"
	"log"

	"github.com/status-im/market-gateway/coingecko"
)

// Aggregator fetches the same market snapshot in both supported currencies
// and merges the result sets by coin id
type Aggregator struct {
	client coingecko.APIClient
}

// NewAggregator creates a market aggregator on top of the upstream client
func NewAggregator(client coingecko.APIClient) *Aggregator {
	return &Aggregator{client: client}
}

// Fetch returns the merged, rank-ordered market record set for the given
// filter. If both ids and category are supplied, ids take precedence. The
// two currency fetches run concurrently; if either fails the whole call
// fails, a half-merged result is never returned.
func (a *Aggregator) Fetch(ctx context.Context, ids []string, category string) ([]MarketRecord, error) {
	if len(ids) > 0 {
		category = ""
	}

	type fetchResult struct {
		rows []coingecko.MarketRow
		err  error
	}

	cadCh := make(chan fetchResult, 1)
	go func() {
		rows, err := a.client.ListMarkets(ctx, CurrencyCAD, ids, category)
		cadCh <- fetchResult{rows: rows, err: err}
	}()

	inrRows, inrErr := a.client.ListMarkets(ctx, CurrencyINR, ids, category)
	cad := <-cadCh

	if inrErr != nil {
		return nil, inrErr
	}
	if cad.err != nil {
		return nil, cad.err
	}

	merged := merge(inrRows, cad.rows)
	log.Printf("Markets: merged %d INR and %d CAD rows into %d records",
		len(inrRows), len(cad.rows), len(merged))

	return merged, nil
}

// merge combines the two currency result sets keyed by coin id. Output
// order is the INR order, with coins only present in CAD appended in their
// returned order. A record exists iff its id appears in at least one set.
func merge(inrRows, cadRows []coingecko.MarketRow) []MarketRecord {
	records := make([]MarketRecord, 0, len(inrRows))
	index := make(map[string]int, len(inrRows))

	for _, row := range inrRows {
		index[row.ID] = len(records)
		records = append(records, MarketRecord{
			ID:                       row.ID,
			Symbol:                   row.Symbol,
			Name:                     row.Name,
			CurrentPriceINR:          row.CurrentPrice,
			MarketCapINR:             row.MarketCap,
			TotalVolumeINR:           row.TotalVolume,
			PriceChangePercentage24h: row.PriceChangePercentage24h,
			MarketCapRank:            row.MarketCapRank,
		})
	}

	for _, row := range cadRows {
		if i, exists := index[row.ID]; exists {
			records[i].CurrentPriceCAD = row.CurrentPrice
			records[i].MarketCapCAD = row.MarketCap
			records[i].TotalVolumeCAD = row.TotalVolume
			continue
		}

		index[row.ID] = len(records)
		records = append(records, MarketRecord{
			ID:                       row.ID,
			Symbol:                   row.Symbol,
			Name:                     row.Name,
			CurrentPriceCAD:          row.CurrentPrice,
			MarketCapCAD:             row.MarketCap,
			TotalVolumeCAD:           row.TotalVolume,
			PriceChangePercentage24h: row.PriceChangePercentage24h,
			MarketCapRank:            row.MarketCapRank,
		})
	}

	return records
}
