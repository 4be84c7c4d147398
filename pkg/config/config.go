package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Environment
// variables are read in this package only.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// External APIs
	Yahoo     YahooConfig
	WorldBank WorldBankConfig

	// Buffett indicator
	Buffett BuffettConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// YahooConfig holds market data provider configuration.
type YahooConfig struct {
	QuoteBaseURL string // quoteSummary, chart, search endpoints
	NewsBaseURL  string // quote pages scraped for headlines
	Timeout      time.Duration
	MaxRetries   int
	RatePerSec   float64 // outbound request budget
}

// WorldBankConfig holds economic data provider configuration.
type WorldBankConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BuffettConfig holds the country set for the macro indicator.
type BuffettConfig struct {
	Countries []string // ISO or World Bank aggregate codes
}

// Load reads configuration from environment variables, with .env file
// support for local development.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8000"),
		Env:  getEnv("ENV", "development"),

		Yahoo: YahooConfig{
			QuoteBaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			NewsBaseURL:  getEnv("YAHOO_NEWS_BASE_URL", "https://finance.yahoo.com"),
			Timeout:      getEnvAsDuration("YAHOO_TIMEOUT", "15s"),
			MaxRetries:   getEnvAsInt("YAHOO_MAX_RETRIES", 3),
			RatePerSec:   getEnvAsFloat("YAHOO_RATE_PER_SEC", 5),
		},

		WorldBank: WorldBankConfig{
			BaseURL: getEnv("WORLDBANK_BASE_URL", "https://api.worldbank.org/v2"),
			Timeout: getEnvAsDuration("WORLDBANK_TIMEOUT", "10s"),
		},

		Buffett: BuffettConfig{
			Countries: getEnvAsList("BUFFETT_COUNTRIES", "US,XC,GB,JP"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if len(c.Buffett.Countries) == 0 {
		return fmt.Errorf("BUFFETT_COUNTRIES must name at least one country")
	}
	if c.Yahoo.RatePerSec <= 0 {
		return fmt.Errorf("YAHOO_RATE_PER_SEC must be positive")
	}
	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, strings.ToUpper(p))
		}
	}
	return values
}
