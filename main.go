package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/status-im/market-gateway/api"
	"github.com/status-im/market-gateway/auth"
	"github.com/status-im/market-gateway/coingecko"
	"github.com/status-im/market-gateway/config"
	"github.com/status-im/market-gateway/markets"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping server...")
		cancel()
	}()

	// Token service with the secret injected from config
	tokenService, err := auth.NewService(cfg.Auth)
	if err != nil {
		log.Fatal("Failed to create token service:", err)
	}

	// Upstream client and the currency-merging aggregator on top of it
	client := coingecko.NewClient(cfg.Coingecko, cfg.RateLimits)
	aggregator := markets.NewAggregator(client)

	// Create and start HTTP server
	server := api.New(cfg, tokenService, client, aggregator)
	if err := server.Start(); err != nil {
		log.Fatal("Server failed:", err)
	}
	defer server.Stop()

	<-ctx.Done()
}
