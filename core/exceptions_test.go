package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unauthorized", NewUnauthorizedError("no session"), http.StatusUnauthorized},
		{"forbidden sentinel", fmt.Errorf("admin: %w", ErrForbidden), http.StatusForbidden},
		{"not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"validation", NewValidationError("text", "Text is required"), http.StatusBadRequest},
		{"store", NewStoreError("read settings", errors.New("disk I/O error")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Fatalf("%s: StatusCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestStoreErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("find cart", cause)
	if !errors.Is(err, ErrStore) {
		t.Fatalf("expected ErrStore in chain")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("store error must not look like not found")
	}
	if got := err.Error(); got != "find cart: store error: connection refused" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"textColor": "Invalid color code", "backgroundColor": "Invalid color code"}}
	want := "validation failed: backgroundColor: Invalid color code; textColor: Invalid color code"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
