package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied for settings absent from the config file
const (
	DefaultPort             = "8000"
	DefaultCoingeckoBaseURL = "https://api.coingecko.com/api/v3"
	DefaultUpstreamTimeout  = 30 * time.Second
	DefaultTokenTTL         = 30 * time.Minute
	DefaultPerPage          = 10
	DefaultMaxPerPage       = 100
)

type Config struct {
	Port       string             `yaml:"port"`
	API        APISettings        `yaml:"api"`
	Auth       AuthSettings       `yaml:"auth"`
	Coingecko  CoingeckoSettings  `yaml:"coingecko"`
	Pagination PaginationSettings `yaml:"pagination"`
	RateLimits APIKeyConfig       `yaml:"rate_limits"`
}

// APISettings describes the service as reported by the version endpoint
type APISettings struct {
	Version string `yaml:"version"`
	Title   string `yaml:"title"`
}

// AuthSettings configures the token service. The signing secret is injected
// through this struct at construction time, never read from a global.
type AuthSettings struct {
	SecretKey    string        `yaml:"secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	DemoUsername string        `yaml:"demo_username"`
	DemoPassword string        `yaml:"demo_password"`
}

// CoingeckoSettings configures the upstream client
type CoingeckoSettings struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type PaginationSettings struct {
	DefaultPerPage int `yaml:"default_per_page"`
	MaxPerPage     int `yaml:"max_per_page"`
}

// LoadConfig reads the yaml config file and applies defaults and
// environment overrides. A missing file is not an error: the defaults
// describe a working demo setup.
func LoadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Config: %s not found, using defaults", path)
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}

	config.applyDefaults()
	config.applyEnvOverrides()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.API.Version == "" {
		c.API.Version = "1.0.0"
	}
	if c.API.Title == "" {
		c.API.Title = "Cryptocurrency Market API"
	}
	if c.Auth.SecretKey == "" {
		c.Auth.SecretKey = "dev-secret-key-change-in-production"
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Auth.DemoUsername == "" {
		c.Auth.DemoUsername = "demo"
	}
	if c.Auth.DemoPassword == "" {
		c.Auth.DemoPassword = "demo123"
	}
	if c.Coingecko.BaseURL == "" {
		c.Coingecko.BaseURL = DefaultCoingeckoBaseURL
	}
	if c.Coingecko.Timeout <= 0 {
		c.Coingecko.Timeout = DefaultUpstreamTimeout
	}
	if c.Pagination.DefaultPerPage <= 0 {
		c.Pagination.DefaultPerPage = DefaultPerPage
	}
	if c.Pagination.MaxPerPage <= 0 {
		c.Pagination.MaxPerPage = DefaultMaxPerPage
	}
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		c.Auth.SecretKey = secret
	}
	if apiKey := os.Getenv("COINGECKO_API_KEY"); apiKey != "" {
		c.Coingecko.APIKey = apiKey
	}
}
