//go:build integration

package mock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/config"
	"github.com/finance-tracker/savings-ledger/internal/infra/db"
	"github.com/finance-tracker/savings-ledger/internal/integration/persistence/model"
)

var dbOnce sync.Once
var database *Db

// Db is a migrated sqlite database shared by every scenario.
type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	tables   []string
	models   map[string]any
}

// NewDb opens the shared database on first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		database = open()
	})
	return database
}

func open() *Db {
	dir, err := os.MkdirTemp("", "savings-ledger-it-*")
	if err != nil {
		panic(err)
	}

	conn, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    filepath.Join(dir, "ledger.db"),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}
	if err := conn.Migrate(); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	var tables []string
	models := make(map[string]any)
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: conn.DB()}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		tables = append(tables, stmt.Schema.Table)
		models[stmt.Schema.Table] = m
	}

	return &Db{
		Database: conn,
		DbConn:   conn.DB(),
		tables:   tables,
		models:   models,
	}
}

// ClearDB deletes every row, children before parents.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		table := d.tables[i]
		if err := d.DbConn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model mapped to table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
