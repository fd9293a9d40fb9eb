package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"savecart/config"

	"github.com/gin-gonic/gin"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging installs a JSON slog logger writing to a rotated log file, and to stdout
// in server mode. The standard logger and gin's writers are redirected to the same sink.
// It returns the rotating writer so callers can close it on shutdown.
func setupLogging(cfg *config.Config) (*lumberjack.Logger, error) {
	if cfg.LogFilePath == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	if dir := filepath.Dir(cfg.LogFilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}

	var out io.Writer = rotator
	if !cfg.CLIMode {
		// the widget console owns the terminal
		out = io.MultiWriter(os.Stdout, rotator)
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	log.SetOutput(out)
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out

	return rotator, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
