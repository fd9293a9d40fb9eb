package database

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"savecart/config"
	"savecart/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the store selected by cfg.DBDriver and configures the connection pool.
// The caller owns the returned handle and must release it with Close.
func Open(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.LogLevel == "DEBUG" {
		logLevel = logger.Info
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: storeMetricsLogger{inner: logger.New(
			log.New(log.Writer(), "\r\n", log.LstdFlags),
			logger.Config{
				LogLevel:                  logLevel,
				SlowThreshold:             500 * time.Millisecond,
				IgnoreRecordNotFoundError: true,
			},
		)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	pool := currentPoolConfig(cfg)
	sqlDB.SetMaxIdleConns(pool.maxIdleConns)
	sqlDB.SetMaxOpenConns(pool.maxOpenConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(pool.maxIdleSec) * time.Second)
	sqlDB.SetConnMaxLifetime(time.Duration(pool.maxLifeSec) * time.Second)

	if cfg.DBDriver == config.DriverSQLite {
		applySQLitePragmas(db, cfg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite, "":
		return sqlite.Open(buildSQLiteDSN(cfg.DatabaseURL, cfg)), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DatabaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// applySQLitePragmas re-applies PRAGMAs as a best-effort startup step for existing DB files.
// Connection URL parameters cover new connections.
func applySQLitePragmas(db *gorm.DB, cfg *config.Config) {
	if !cfg.SQLitePragmasEnabled {
		return
	}
	if cfg.SQLiteBusyTimeoutMS > 0 {
		db.Exec("PRAGMA busy_timeout = ?", cfg.SQLiteBusyTimeoutMS)
	}
	if journalMode := normalizeSQLiteJournalMode(cfg.SQLiteJournalMode); journalMode != "" {
		db.Exec("PRAGMA journal_mode = " + journalMode)
	}
	if synchronous := normalizeSQLiteSynchronous(cfg.SQLiteSynchronous); synchronous != "" {
		db.Exec("PRAGMA synchronous = " + synchronous)
	}
	if cfg.SQLiteForeignKeys {
		db.Exec("PRAGMA foreign_keys = ON")
	} else {
		db.Exec("PRAGMA foreign_keys = OFF")
	}
}

// Migrate creates or updates the tables this service reads and writes.
// shop_sessions is owned by the session storage but is migrated so local setups work.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ThemeSettings{}, &models.SavedCart{}, &models.ShopSession{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the database connection and releases resources
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	slog.Info("closing database connection")
	return sqlDB.Close()
}

// Up reports whether the store answers a ping within the context deadline (200ms when unset).
func Up(ctx context.Context, db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) <= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()
	}

	return sqlDB.PingContext(ctx) == nil
}
