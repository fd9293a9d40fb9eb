package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"savecart/version"

	"github.com/joho/godotenv"
)

// Database drivers accepted by DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Saved-cart backends accepted by CART_BACKEND.
const (
	CartBackendSQL       = "sql"
	CartBackendFirestore = "firestore"
)

// Config holds savecart runtime configuration.
type Config struct {
	LogLevel         string
	LogFilePath      string
	LogMaxSizeMB     int
	LogMaxBackups    int
	LogMaxAgeDays    int
	Port             int
	APIBasePath      string
	CORSAllowOrigins []string

	DBDriver                 string
	DatabaseURL              string
	SQLitePragmasEnabled     bool
	SQLiteBusyTimeoutMS      int
	SQLiteJournalMode        string
	SQLiteSynchronous        string
	SQLiteForeignKeys        bool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxIdleSec         int
	DBConnMaxLifeSec         int
	SeedDefaults             bool
	CartBackend              string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirestoreCartCollection  string

	SessionCookieName string
	AdminAPIKeyHash   string
	AdminAllowCIDRs   []string
	AdminDenyCIDRs    []string

	TelemetryEnabled bool
	TelemetryDir     string

	CLIMode              bool
	CLIServer            string // Server URL for widget mode
	CLIToken             string // Session token sent by the widget
	CLIProfile           string
	ClientTimeoutSeconds int
}

// Settings is the global configuration instance populated from environment variables and flags.
var Settings *Config

func init() {
	Settings = FromEnv()
}

// FromEnv builds a Config from the current environment, falling back to defaults.
func FromEnv() *Config {
	return &Config{
		LogLevel:         strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFilePath:      getEnv("LOG_FILE", "./savecart.log"),
		LogMaxSizeMB:     getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups:    getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:    getEnvInt("LOG_MAX_AGE_DAYS", 28),
		Port:             getEnvInt("PORT", 8080),
		APIBasePath:      normalizeBasePath(getEnv("API_BASE_PATH", "/api")),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),

		DBDriver:                 strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DatabaseURL:              getEnv("DATABASE_URL", "savecart.db"),
		SQLitePragmasEnabled:     getEnvBool("SQLITE_PRAGMAS_ENABLED", true),
		SQLiteBusyTimeoutMS:      getEnvInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
		SQLiteJournalMode:        getEnv("SQLITE_JOURNAL_MODE", "WAL"),
		SQLiteSynchronous:        getEnv("SQLITE_SYNCHRONOUS", "NORMAL"),
		SQLiteForeignKeys:        getEnvBool("SQLITE_FOREIGN_KEYS", true),
		DBMaxOpenConns:           getEnvInt("DB_MAX_OPEN_CONNS", 1),
		DBMaxIdleConns:           getEnvInt("DB_MAX_IDLE_CONNS", 1),
		DBConnMaxIdleSec:         getEnvInt("DB_CONN_MAX_IDLE_SECONDS", 300),
		DBConnMaxLifeSec:         getEnvInt("DB_CONN_MAX_LIFETIME_SECONDS", 0),
		SeedDefaults:             getEnvBool("SEED_DEFAULTS", true),
		CartBackend:              strings.ToLower(getEnv("CART_BACKEND", CartBackendSQL)),
		FirestoreProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),
		FirestoreCartCollection:  getEnv("FIRESTORE_CART_COLLECTION", "saved_carts"),

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "shopify_app_session"),
		AdminAPIKeyHash:   getEnv("ADMIN_API_KEY_HASH", ""),
		AdminAllowCIDRs:   getEnvList("ADMIN_ALLOW_CIDRS", nil),
		AdminDenyCIDRs:    getEnvList("ADMIN_DENY_CIDRS", nil),

		TelemetryEnabled: getEnvBool("TELEMETRY_ENABLED", false),
		TelemetryDir:     getEnv("TELEMETRY_DIR", "logs"),

		CLIMode:              getEnvBool("CLI_MODE", false),
		CLIServer:            getEnv("SAVECART_SERVER", "http://localhost:8080"),
		CLIToken:             getEnv("SAVECART_TOKEN", ""),
		ClientTimeoutSeconds: getEnvInt("CLIENT_TIMEOUT_SECONDS", 30),
	}
}

// ParseFlags loads .env files, re-reads the environment into Settings and applies
// command-line overrides. --help and --version print and exit.
func ParseFlags() {
	loadDotEnv(".env", "environments/.env.local")
	Settings = FromEnv()

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "savecart - saved cart retrieval service\n\n")
		fmt.Fprintf(out, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintln(out, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(out, "\nEnvironment variables:")
		fmt.Fprintln(out, "  LOG_LEVEL                     Log level (DEBUG, INFO, WARN, ERROR)")
		fmt.Fprintln(out, "  LOG_FILE                      Log file path (default ./savecart.log)")
		fmt.Fprintln(out, "  PORT                          HTTP server port (default 8080)")
		fmt.Fprintln(out, "  API_BASE_PATH                 Base path for API routes (default /api)")
		fmt.Fprintln(out, "  CORS_ALLOW_ORIGINS            Comma-separated allowed origins (default *); cookies need explicit origins")
		fmt.Fprintln(out, "  DB_DRIVER                     sqlite or postgres (default sqlite)")
		fmt.Fprintln(out, "  DATABASE_URL                  SQLite path or Postgres DSN (default savecart.db)")
		fmt.Fprintln(out, "  SQLITE_PRAGMAS_ENABLED        Enable SQLite PRAGMAs (default true)")
		fmt.Fprintln(out, "  SQLITE_BUSY_TIMEOUT_MS        SQLite busy_timeout in milliseconds (default 5000)")
		fmt.Fprintln(out, "  SQLITE_JOURNAL_MODE           SQLite journal_mode (default WAL)")
		fmt.Fprintln(out, "  SQLITE_SYNCHRONOUS            SQLite synchronous (default NORMAL)")
		fmt.Fprintln(out, "  DB_MAX_OPEN_CONNS             Connection pool MaxOpenConns (default 1)")
		fmt.Fprintln(out, "  DB_MAX_IDLE_CONNS             Connection pool MaxIdleConns (default 1)")
		fmt.Fprintln(out, "  SEED_DEFAULTS                 Seed default theme settings when empty (default true)")
		fmt.Fprintln(out, "  CART_BACKEND                  sql or firestore (default sql)")
		fmt.Fprintln(out, "  FIRESTORE_PROJECT_ID          Firestore project for CART_BACKEND=firestore")
		fmt.Fprintln(out, "  FIRESTORE_CREDENTIALS_FILE    Service account JSON for Firestore")
		fmt.Fprintln(out, "  FIRESTORE_CART_COLLECTION     Firestore collection holding saved carts (default saved_carts)")
		fmt.Fprintln(out, "  SESSION_COOKIE_NAME           Session cookie name (default shopify_app_session)")
		fmt.Fprintln(out, "  ADMIN_API_KEY_HASH            bcrypt hash of the X-Admin-Key value; required for PATCH theme-settings")
		fmt.Fprintln(out, "  ADMIN_ALLOW_CIDRS             Comma-separated CIDRs allowed to call admin endpoints")
		fmt.Fprintln(out, "  ADMIN_DENY_CIDRS              Comma-separated CIDRs denied from admin endpoints")
		fmt.Fprintln(out, "  TELEMETRY_ENABLED             Export traces and metrics to TELEMETRY_DIR (default false)")
		fmt.Fprintln(out, "  CLIENT_TIMEOUT_SECONDS        Widget HTTP timeout, 0 disables (default 30)")
	}

	port := flag.Int("port", Settings.Port, "HTTP server port (overrides PORT)")
	basePath := flag.String("base-path", Settings.APIBasePath, "API base path (overrides API_BASE_PATH)")
	dbDriver := flag.String("db-driver", Settings.DBDriver, "Database driver: sqlite or postgres (overrides DB_DRIVER)")
	db := flag.String("db", Settings.DatabaseURL, "Database path or DSN (overrides DATABASE_URL)")
	cartBackend := flag.String("cart-backend", Settings.CartBackend, "Saved cart backend: sql or firestore (overrides CART_BACKEND)")
	seed := flag.Bool("seed", Settings.SeedDefaults, "Seed default theme settings (overrides SEED_DEFAULTS)")
	logLevel := flag.String("log-level", Settings.LogLevel, "Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")
	logFile := flag.String("log-file", Settings.LogFilePath, "Log file path (overrides LOG_FILE)")
	telemetry := flag.Bool("telemetry", Settings.TelemetryEnabled, "Export traces and metrics (overrides TELEMETRY_ENABLED)")
	cliMode := flag.Bool("cli", Settings.CLIMode, "Run the checkout widget console against a server")
	cliServer := flag.String("server", Settings.CLIServer, "Server URL for widget mode")
	cliToken := flag.String("token", Settings.CLIToken, "Session token for widget mode")
	cliProfile := flag.String("profile", "", "Widget profile name from ~/.savecart/config.yaml")

	showHelp := flag.Bool("help", false, "Show help and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetBuildInfo())
		os.Exit(0)
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	Settings.Port = *port
	Settings.APIBasePath = normalizeBasePath(*basePath)
	Settings.DBDriver = strings.ToLower(*dbDriver)
	Settings.DatabaseURL = *db
	Settings.CartBackend = strings.ToLower(*cartBackend)
	Settings.SeedDefaults = *seed
	Settings.LogLevel = strings.ToUpper(*logLevel)
	Settings.LogFilePath = *logFile
	Settings.TelemetryEnabled = *telemetry
	Settings.CLIMode = *cliMode
	Settings.CLIServer = *cliServer
	Settings.CLIToken = *cliToken
	Settings.CLIProfile = *cliProfile
}

// Validate reports settings combinations that cannot start a server.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.CartBackend {
	case CartBackendSQL:
	case CartBackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when CART_BACKEND=firestore")
		}
	default:
		return fmt.Errorf("unsupported CART_BACKEND %q", c.CartBackend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Warnings lists settings that start a server with features switched off.
func (c *Config) Warnings() []string {
	var out []string
	if c.AdminAPIKeyHash == "" {
		out = append(out, "ADMIN_API_KEY_HASH is not set; PATCH "+c.APIBasePath+"/theme-settings answers 403 until it holds a bcrypt hash of the X-Admin-Key value")
	}
	if len(c.CORSAllowOrigins) == 0 || slices.Contains(c.CORSAllowOrigins, "*") {
		out = append(out, "CORS_ALLOW_ORIGINS allows any origin; cross-origin requests cannot carry session cookies, list origins explicitly to allow them")
	}
	return out
}

// loadDotEnv loads the first .env file found; a missing file is not an error.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			log.Printf("Warning: failed to load %s: %v", p, err)
			continue
		}
		return
	}
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
