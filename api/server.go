package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/market-gateway/auth"
	"github.com/status-im/market-gateway/coingecko"
	"github.com/status-im/market-gateway/config"
	"github.com/status-im/market-gateway/markets"
)

type Server struct {
	cfg        *config.Config
	tokens     *auth.Service
	client     coingecko.APIClient
	aggregator *markets.Aggregator
	server     *http.Server
}

func New(cfg *config.Config, tokens *auth.Service, client coingecko.APIClient, aggregator *markets.Aggregator) *Server {
	return &Server{
		cfg:        cfg,
		tokens:     tokens,
		client:     client,
		aggregator: aggregator,
	}
}

// Handler builds the HTTP routing tree. Split out from Start so tests can
// drive the full stack through httptest.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/auth/login", s.handleLogin).Methods("POST")

	coins := router.PathPrefix("/v1/coins").Subrouter()
	coins.Use(s.requireBearer)
	coins.HandleFunc("/", s.handleCoinsList).Methods("GET")
	coins.HandleFunc("/categories", s.handleCategoriesList).Methods("GET")
	coins.HandleFunc("/market", s.handleCoinsMarket).Methods("GET")

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/health/version", s.handleVersion).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.Handler(),
	}

	log.Printf("Server starting at http://localhost:%s", s.cfg.Port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
