package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()

		if cfg.Scheduler.AutoSaveInterval != time.Hour || cfg.Scheduler.AutoSaveBatchSize != 100 || !cfg.Scheduler.AutoSaveEnabled {
			t.Errorf("unexpected scheduler defaults: %+v", cfg.Scheduler)
		}
		if cfg.Market.CacheTTL != time.Hour || cfg.Market.HTTPTimeout != 5*time.Second {
			t.Errorf("unexpected market defaults: %+v", cfg.Market)
		}
		if cfg.Database.Driver != "postgres" {
			t.Errorf("Database.Driver = %q, want postgres", cfg.Database.Driver)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("AUTOSAVE_INTERVAL", "15m")
		t.Setenv("AUTOSAVE_ENABLED", "false")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("MARKET_CACHE_TTL", "30s")

		cfg := Load()

		if cfg.Scheduler.AutoSaveInterval != 15*time.Minute {
			t.Errorf("AutoSaveInterval = %v", cfg.Scheduler.AutoSaveInterval)
		}
		if cfg.Scheduler.AutoSaveEnabled {
			t.Error("expected auto-save disabled")
		}
		if cfg.Server.Port != 9090 {
			t.Errorf("Port = %d", cfg.Server.Port)
		}
		if cfg.Market.CacheTTL != 30*time.Second {
			t.Errorf("CacheTTL = %v", cfg.Market.CacheTTL)
		}
	})

	t.Run("malformed values fall back to defaults", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "eighty")
		t.Setenv("AUTOSAVE_INTERVAL", "hourly")
		t.Setenv("AUTOSAVE_ENABLED", "maybe")

		cfg := Load()

		if cfg.Server.Port != 8080 || cfg.Scheduler.AutoSaveInterval != time.Hour || !cfg.Scheduler.AutoSaveEnabled {
			t.Errorf("expected defaults, got port=%d interval=%v enabled=%v",
				cfg.Server.Port, cfg.Scheduler.AutoSaveInterval, cfg.Scheduler.AutoSaveEnabled)
		}
	})
}
