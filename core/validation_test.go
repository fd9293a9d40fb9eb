package core

import (
	"errors"
	"strings"
	"testing"

	"savecart/models"
)

func uintPtr(v uint) *uint { return &v }

func TestValidateThemeSettings_Valid(t *testing.T) {
	got, err := ValidateThemeSettings(models.ThemeSettingsInput{
		Text:            "  Hi  ",
		TextColor:       "#111111",
		BackgroundColor: "#FFffAa",
	})
	if err != nil {
		t.Fatalf("ValidateThemeSettings: %v", err)
	}
	if got.ID != DefaultThemeSettingsID {
		t.Fatalf("expected default id %d, got %d", DefaultThemeSettingsID, got.ID)
	}
	if got.Text != "Hi" || got.TextColor != "#111111" || got.BackgroundColor != "#FFffAa" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestValidateThemeSettings_ExplicitID(t *testing.T) {
	in := models.ThemeSettingsInput{ID: uintPtr(7), Text: "x", TextColor: "#000000", BackgroundColor: "#ffffff"}
	got, err := ValidateThemeSettings(in)
	if err != nil {
		t.Fatalf("ValidateThemeSettings: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("expected id 7, got %d", got.ID)
	}

	in.ID = uintPtr(0)
	got, err = ValidateThemeSettings(in)
	if err != nil {
		t.Fatalf("ValidateThemeSettings: %v", err)
	}
	if got.ID != DefaultThemeSettingsID {
		t.Fatalf("expected zero id to fall back to default, got %d", got.ID)
	}
}

func TestValidateThemeSettings_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    models.ThemeSettingsInput
		field string
	}{
		{"empty text", models.ThemeSettingsInput{Text: "", TextColor: "#111111", BackgroundColor: "#ffffff"}, "text"},
		{"blank text", models.ThemeSettingsInput{Text: "   ", TextColor: "#111111", BackgroundColor: "#ffffff"}, "text"},
		{"named color", models.ThemeSettingsInput{Text: "Hi", TextColor: "red", BackgroundColor: "#ffffff"}, "textColor"},
		{"short hex", models.ThemeSettingsInput{Text: "Hi", TextColor: "#fff", BackgroundColor: "#ffffff"}, "textColor"},
		{"missing hash", models.ThemeSettingsInput{Text: "Hi", TextColor: "111111", BackgroundColor: "#ffffff"}, "textColor"},
		{"alpha hex", models.ThemeSettingsInput{Text: "Hi", TextColor: "#111111", BackgroundColor: "#ffffff00"}, "backgroundColor"},
		{"non hex digit", models.ThemeSettingsInput{Text: "Hi", TextColor: "#111111", BackgroundColor: "#gggggg"}, "backgroundColor"},
		{"missing background", models.ThemeSettingsInput{Text: "Hi", TextColor: "#111111"}, "backgroundColor"},
	}

	for _, tt := range tests {
		_, err := ValidateThemeSettings(tt.in)
		if err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected *ValidationError, got %T", tt.name, err)
		}
		if _, ok := verr.Fields[tt.field]; !ok {
			t.Fatalf("%s: expected reason for %q, got %v", tt.name, tt.field, verr.Fields)
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput in chain", tt.name)
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Fatalf("%s: expected message to reference %q, got %q", tt.name, tt.field, err.Error())
		}
	}
}

func TestValidateThemeSettings_ReportsEveryField(t *testing.T) {
	_, err := ValidateThemeSettings(models.ThemeSettingsInput{TextColor: "red", BackgroundColor: "blue"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field reasons, got %v", verr.Fields)
	}
	if verr.Fields["text"] != "Text is required" {
		t.Fatalf("unexpected text reason %q", verr.Fields["text"])
	}
	if verr.Fields["textColor"] != "Invalid color code" {
		t.Fatalf("unexpected textColor reason %q", verr.Fields["textColor"])
	}
}

func TestIsRGBHex6(t *testing.T) {
	good := []string{"#000000", "#ABCDEF", "#abcdef", "#a1B2c3"}
	bad := []string{"", "#", "#12345", "#1234567", "123456", "#12345g", " #123456"}
	for _, s := range good {
		if !IsRGBHex6(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range bad {
		if IsRGBHex6(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
