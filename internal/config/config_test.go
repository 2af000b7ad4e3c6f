package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.BridgeURL != "http://localhost:3001" {
		t.Errorf("BridgeURL = %q", cfg.BridgeURL)
	}
	if cfg.ScanWindowDays != 14 {
		t.Errorf("ScanWindowDays = %d, want 14", cfg.ScanWindowDays)
	}
	if cfg.ScanItemCap != 1000 {
		t.Errorf("ScanItemCap = %d, want 1000", cfg.ScanItemCap)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.SoldRetention != 24*time.Hour {
		t.Errorf("SoldRetention = %v, want 24h", cfg.SoldRetention)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SCAN_WINDOW_DAYS", "7")
	t.Setenv("SCAN_CACHE_TTL", "90s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if cfg.ScanWindowDays != 7 {
		t.Errorf("ScanWindowDays = %d, want 7", cfg.ScanWindowDays)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SCAN_ITEM_CAP", "not-a-number")
	t.Setenv("SOLD_RETENTION", "-5h")

	cfg := Load()

	if cfg.ScanItemCap != 1000 {
		t.Errorf("ScanItemCap = %d, want default 1000", cfg.ScanItemCap)
	}
	if cfg.SoldRetention != 24*time.Hour {
		t.Errorf("SoldRetention = %v, want default 24h", cfg.SoldRetention)
	}
}
