package api

import (
	"net/http"

	"github.com/status-im/market-gateway/pagination"
)

// handleCoinsList responds with the paginated full coin listing. The
// upstream listing is not paginated in this shape, so the full set is
// fetched and sliced locally.
func (s *Server) handleCoinsList(w http.ResponseWriter, r *http.Request) {
	params, err := s.parsePageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	coins, err := s.client.ListCoins(r.Context())
	if err != nil {
		mapUpstreamError(w, err)
		return
	}

	page, total := pagination.Paginate(coins, params)
	sendPage(w, page, params, total)
}

// handleCategoriesList responds with the paginated category listing
func (s *Server) handleCategoriesList(w http.ResponseWriter, r *http.Request) {
	params, err := s.parsePageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := s.client.ListCategories(r.Context())
	if err != nil {
		mapUpstreamError(w, err)
		return
	}

	page, total := pagination.Paginate(categories, params)
	sendPage(w, page, params, total)
}

// handleCoinsMarket responds with the paginated multi-currency market
// snapshot, optionally filtered by coin_ids or category. The total reflects
// the full merged set, pagination happens after the merge.
func (s *Server) handleCoinsMarket(w http.ResponseWriter, r *http.Request) {
	params, err := s.parsePageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ids := splitParam(r.URL.Query().Get("coin_ids"))
	category := r.URL.Query().Get("category")

	records, err := s.aggregator.Fetch(r.Context(), ids, category)
	if err != nil {
		mapUpstreamError(w, err)
		return
	}

	page, total := pagination.Paginate(records, params)
	sendPage(w, page, params, total)
}
