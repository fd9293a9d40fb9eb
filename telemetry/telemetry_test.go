package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"savecart/config"

	"github.com/gin-gonic/gin"
)

func TestInit_CreatesExportFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "telemetry")
	cleanup, err := Init(context.Background(), &config.Config{TelemetryDir: dir})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	_, span := Tracer("test").Start(context.Background(), "unit")
	span.End()
	cleanup()

	if _, err := os.Stat(filepath.Join(dir, "savecart_traces.log")); err != nil {
		t.Fatalf("expected trace file: %v", err)
	}
}

func TestGinMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusTeapot, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "pong" {
		t.Fatalf("unexpected response: %d %q", w.Code, w.Body.String())
	}
}
