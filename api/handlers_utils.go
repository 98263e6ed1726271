package api

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/status-im/market-gateway/coingecko"
	"github.com/status-im/market-gateway/pagination"
)

// pageResponse is the envelope shared by all three list endpoints
type pageResponse struct {
	Data    interface{} `json:"data"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int         `json:"total"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// sendJSONResponse is a common wrapper for JSON responses that sets
// Content-Type, Content-Length and ETag headers
func sendJSONResponse(w http.ResponseWriter, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Detail: detail}); err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}

func sendPage(w http.ResponseWriter, data interface{}, params pagination.Params, total int) {
	sendJSONResponse(w, pageResponse{
		Data:    data,
		Page:    params.PageNum,
		PerPage: params.PerPage,
		Total:   total,
	})
}

// parsePageParams reads page_num and per_page from the query. Non-numeric
// values are a validation error; numeric out-of-range values clamp
// silently. An absent per_page takes the configured default, an explicit
// per_page=0 clamps to 1 like any other out-of-range value.
func (s *Server) parsePageParams(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{
		PageNum: 1,
		PerPage: s.cfg.Pagination.DefaultPerPage,
	}

	if raw := r.URL.Query().Get("page_num"); raw != "" {
		pageNum, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Params{}, fmt.Errorf("page_num must be an integer, got %q", raw)
		}
		params.PageNum = pageNum
	}

	if raw := r.URL.Query().Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Params{}, fmt.Errorf("per_page must be an integer, got %q", raw)
		}
		params.PerPage = perPage
	}

	return params.Normalize(s.cfg.Pagination.MaxPerPage), nil
}

// mapUpstreamError translates a client error into the outward status:
// timeouts are 504, any other upstream failure (including 429) is 503.
func mapUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, coingecko.ErrUpstreamTimeout) {
		writeError(w, http.StatusGatewayTimeout, "CoinGecko API timeout")
		return
	}

	var upstreamErr *coingecko.UpstreamError
	if errors.As(err, &upstreamErr) {
		writeError(w, http.StatusServiceUnavailable,
			fmt.Sprintf("CoinGecko API error: status %d", upstreamErr.Status))
		return
	}

	log.Printf("API: internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// splitParam splits a comma-separated query value, dropping empty entries
func splitParam(param string) []string {
	if param == "" {
		return nil
	}

	parts := strings.Split(param, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
