package database

import (
	"context"
	"fmt"
	"testing"

	"savecart/config"
	"savecart/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBDriver:       config.DriverSQLite,
		DatabaseURL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}
}

func TestOpenMigrateClose(t *testing.T) {
	cfg := testConfig(t)
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []any{&models.ThemeSettings{}, &models.SavedCart{}, &models.ShopSession{}} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table for %T", table)
		}
	}
	if !Up(context.Background(), db) {
		t.Fatalf("expected store to be up")
	}
}

func TestUp_ClosedStore(t *testing.T) {
	cfg := testConfig(t)
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if Up(context.Background(), db) {
		t.Fatalf("expected closed store to be down")
	}
	if Up(context.Background(), nil) {
		t.Fatalf("expected nil store to be down")
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(&config.Config{DBDriver: "mysql"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
