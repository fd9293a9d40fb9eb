package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"savecart/models"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})
	mux.HandleFunc("/api/check-login", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer broken" {
			w.Write([]byte(`{"isLoggedIn":false,"error":"Failed to check login status."}`))
			return
		}
		loggedIn := r.Header.Get("Authorization") == "Bearer good"
		json.NewEncoder(w).Encode(map[string]bool{"isLoggedIn": loggedIn})
	})
	mux.HandleFunc("/api/theme-settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"id":1,"text":"Hi","textColor":"#000000","backgroundColor":"#ffffff"}`))
		case http.MethodPatch:
			if r.Header.Get("X-Admin-Key") != "key" {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"Forbidden"}`))
				return
			}
			var in models.ThemeSettingsInput
			json.NewDecoder(r.Body).Decode(&in)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": models.ThemeSettings{ID: 1, Text: in.Text}})
		}
	})
	mux.HandleFunc("/api/saved-cart", func(w http.ResponseWriter, r *http.Request) {
		var in models.SavedCartLookup
		json.NewDecoder(r.Body).Decode(&in)
		if in.ID == "abc" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"No saved cart found."}`))
			return
		}
		w.Write([]byte(`{"id":"42","items":[{"variantId":"v1","quantity":1,"unitPrice":5}],"currency":"USD","totalAmount":5}`))
	})
	mux.HandleFunc("/api/customer", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"customerId":"42"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Endpoints(t *testing.T) {
	srv := newAPIServer(t)
	c := NewClient(srv.URL+"/api/", 5*time.Second)
	ctx := context.Background()

	if err := c.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}

	if ok, err := c.CheckLogin(ctx); err != nil || ok {
		t.Fatalf("CheckLogin without token = %v, %v", ok, err)
	}
	c.SetToken("good")
	if ok, err := c.CheckLogin(ctx); err != nil || !ok {
		t.Fatalf("CheckLogin with token = %v, %v", ok, err)
	}

	ts, err := c.ThemeSettings(ctx)
	if err != nil || ts.Text != "Hi" {
		t.Fatalf("ThemeSettings = %+v, %v", ts, err)
	}

	cart, err := c.SavedCart(ctx, "")
	if err != nil || cart.ID != "42" || len(cart.Items) != 1 {
		t.Fatalf("SavedCart = %+v, %v", cart, err)
	}

	if id, err := c.Customer(ctx); err != nil || id != "42" {
		t.Fatalf("Customer = %q, %v", id, err)
	}
}

func TestClient_NotFound(t *testing.T) {
	srv := newAPIServer(t)
	c := NewClient(srv.URL+"/api", 5*time.Second)

	_, err := c.SavedCart(context.Background(), "abc")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "No saved cart found." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_UpdateThemeSettings(t *testing.T) {
	srv := newAPIServer(t)
	c := NewClient(srv.URL+"/api", 5*time.Second)
	in := models.ThemeSettingsInput{Text: "New", TextColor: "#000000", BackgroundColor: "#ffffff"}

	if _, err := c.UpdateThemeSettings(context.Background(), in); err == nil {
		t.Fatalf("expected forbidden without admin key")
	}
	c.SetAdminKey("key")
	ts, err := c.UpdateThemeSettings(context.Background(), in)
	if err != nil || ts.Text != "New" {
		t.Fatalf("UpdateThemeSettings = %+v, %v", ts, err)
	}
}

func TestClient_CheckLoginServerFailure(t *testing.T) {
	srv := newAPIServer(t)
	c := NewClient(srv.URL+"/api", 5*time.Second)
	c.SetToken("broken")

	ok, err := c.CheckLogin(context.Background())
	var apiErr *APIError
	if ok || !errors.As(err, &apiErr) || apiErr.Message != "Failed to check login status." {
		t.Fatalf("CheckLogin = %v, %v", ok, err)
	}

	w := NewWidget(c, nil)
	if err := w.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if w.State() != StateError || w.Error() != ErrLoginCheckText {
		t.Fatalf("state = %v, error = %q", w.State(), w.Error())
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := newAPIServer(t)
	url := srv.URL
	srv.Close()

	c := NewClient(url+"/api", time.Second)
	_, err := c.CheckLogin(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestWidget_AgainstClient(t *testing.T) {
	srv := newAPIServer(t)
	c := NewClient(srv.URL+"/api", 5*time.Second)
	c.SetToken("good")

	w := NewWidget(c, nil)
	if err := w.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if w.State() != StateLoggedIn {
		t.Fatalf("State = %s", w.State())
	}
	var buf bytes.Buffer
	w.Render(&buf)
	if !strings.Contains(buf.String(), "Hi") {
		t.Fatalf("unexpected render: %s", buf.String())
	}
}

func TestConsole_Commands(t *testing.T) {
	srv := newAPIServer(t)
	c := NewClient(srv.URL+"/api", 5*time.Second)
	c.SetToken("good")

	var out bytes.Buffer
	console := newConsole(c, &out, nil)
	ctx := context.Background()

	console.handleCommand(ctx, "refresh")
	console.handleCommand(ctx, "load")
	if !strings.Contains(out.String(), "Retrieved cart 42") {
		t.Fatalf("unexpected output: %s", out.String())
	}

	out.Reset()
	console.handleCommand(ctx, "status")
	if !strings.Contains(out.String(), "logged-in") {
		t.Fatalf("unexpected status: %s", out.String())
	}

	out.Reset()
	c.SetAdminKey("key")
	console.handleCommand(ctx, "theme set Grab your cart #000000 #ffffff")
	if !strings.Contains(out.String(), "Theme settings 1 updated") {
		t.Fatalf("unexpected theme output: %s", out.String())
	}

	console.handleCommand(ctx, "exit")
	if console.running {
		t.Fatalf("expected console to stop")
	}
}
