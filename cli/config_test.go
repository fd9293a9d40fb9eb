package cli

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	p, err := cfg.GetProfile("")
	if err != nil || p.URL != "http://localhost:8080" {
		t.Fatalf("default profile = %+v, %v", p, err)
	}
}

func TestConfig_ProfilesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}

	if err := cfg.AddProfile("staging", Profile{URL: "https://staging.example.com", Token: "tok", AdminKey: "key"}); err != nil {
		t.Fatalf("AddProfile: %v", err)
	}
	if err := cfg.RemoveProfile("local"); err != nil {
		t.Fatalf("RemoveProfile: %v", err)
	}

	reloaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.DefaultProfile != "staging" {
		t.Fatalf("DefaultProfile = %q", reloaded.DefaultProfile)
	}
	p, err := reloaded.GetProfile("staging")
	if err != nil || p.Token != "tok" || p.AdminKey != "key" {
		t.Fatalf("GetProfile = %+v, %v", p, err)
	}
	if err := reloaded.AddProfile("", Profile{URL: "x"}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
