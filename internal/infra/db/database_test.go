package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/finance-tracker/savings-ledger/config"
)

func TestNewConnection(t *testing.T) {
	t.Run("sqlite file database migrates", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Driver: DriverSQLite,
			URL:    filepath.Join(t.TempDir(), "ledger.db"),
		}

		database, err := NewConnection(cfg)
		if err != nil {
			t.Fatalf("NewConnection() error = %v", err)
		}
		defer database.Close()

		if err := database.Migrate(); err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
		if !database.DB().Migrator().HasTable("savings_goals") {
			t.Error("expected savings_goals table")
		}
		if err := database.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		if _, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
			t.Error("expected error for unsupported driver")
		}
	})
}
