package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port      string
	Env       string
	BridgeURL string // base URL of the whatsapp-web.js sidecar

	// Scanning
	ScanWindowDays  int           // historical lookback for windowed scans
	ScanItemCap     int           // global cap on items per scan
	GroupFetchLimit int           // messages fetched per group per scan
	CacheTTL        time.Duration // windowed-scan cache validity
	SoldRetention   time.Duration // how long sold listings stay visible
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		BridgeURL:       getEnv("BRIDGE_URL", "http://localhost:3001"),
		ScanWindowDays:  getEnvInt("SCAN_WINDOW_DAYS", 14),
		ScanItemCap:     getEnvInt("SCAN_ITEM_CAP", 1000),
		GroupFetchLimit: getEnvInt("GROUP_FETCH_LIMIT", 1000),
		CacheTTL:        getEnvDuration("SCAN_CACHE_TTL", 5*time.Minute),
		SoldRetention:   getEnvDuration("SOLD_RETENTION", 24*time.Hour),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
