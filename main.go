package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"savecart/cli"
	"savecart/config"
	"savecart/core"
	"savecart/database"
	"savecart/handlers"
	"savecart/service"
	"savecart/telemetry"
	"savecart/version"

	"cloud.google.com/go/firestore"
)

func main() {
	// Load .env files and parse CLI flags
	config.ParseFlags()
	cfg := config.Settings

	rotator, err := setupLogging(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer rotator.Close()

	if cfg.CLIMode {
		os.Exit(mainCLI(cfg))
	}

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("savecart starting", "version", version.GetFullVersion(), "db_driver", cfg.DBDriver, "cart_backend", cfg.CartBackend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TelemetryEnabled {
		cleanup, err := telemetry.Init(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer cleanup()
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	var carts service.CartRepository
	if cfg.CartBackend == config.CartBackendFirestore {
		var fs *firestore.Client
		fs, err = database.OpenFirestore(ctx, cfg)
		if err != nil {
			return err
		}
		defer fs.Close()
		carts = service.NewFirestoreCartRepository(fs, cfg.FirestoreCartCollection)
	}

	svcs := service.New(db, carts)

	if cfg.SeedDefaults {
		created, err := svcs.Settings.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		if created {
			slog.Info("seeded default theme settings")
		}
	}

	for _, w := range cfg.Warnings() {
		slog.Warn(w)
	}

	h := handlers.New(cfg, db, svcs, core.NewErrorLogger(0, slog.Default()))
	router, err := handlers.NewRouter(h)
	if err != nil {
		return err
	}

	listener, err := core.Listen("0.0.0.0", cfg.Port)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", listener.Addr().String(), "base_path", cfg.APIBasePath)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited")
	return nil
}

// mainCLI runs the checkout widget console against a running server
func mainCLI(cfg *config.Config) int {
	serverURL, token, adminKey := cfg.CLIServer, cfg.CLIToken, ""

	if cfg.CLIProfile != "" {
		profiles, err := cli.LoadConfig()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		p, err := profiles.GetProfile(cfg.CLIProfile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		serverURL = p.URL
		if token == "" {
			token = p.Token
		}
		adminKey = p.AdminKey
	}

	client := cli.NewClient(strings.TrimRight(serverURL, "/")+cfg.APIBasePath, time.Duration(cfg.ClientTimeoutSeconds)*time.Second)
	client.SetToken(token)
	client.SetAdminKey(adminKey)

	ctx := context.Background()
	console, err := cli.NewConsole(ctx, client, slog.Default())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("\nTips:")
		fmt.Println("  1. Make sure the savecart server is running:")
		fmt.Println("     ./savecart")
		fmt.Println("  2. Or specify a different server:")
		fmt.Println("     ./savecart --cli --server http://your-server:8080 --token <session>")
		return 1
	}

	console.Start(ctx)
	return 0
}
