package api

import (
	"net/http"
)

type healthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	CoingeckoStatus string `json:"coingecko_status"`
}

// handleHealth reports service status plus an upstream ping probe. An
// unreachable upstream degrades the report, it does not fail the endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	coingeckoStatus := "healthy"
	if err := s.client.Ping(r.Context()); err != nil {
		coingeckoStatus = "unhealthy"
	}

	sendJSONResponse(w, healthResponse{
		Status:          "healthy",
		Version:         s.cfg.API.Version,
		CoingeckoStatus: coingeckoStatus,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, map[string]string{
		"version": s.cfg.API.Version,
		"title":   s.cfg.API.Title,
	})
}
