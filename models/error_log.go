package models

import "time"

// ErrorLog is a server-side diagnostic kept by core.ErrorLogger
type ErrorLog struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`      // ERROR, WARN
	Source    string    `json:"source"`     // Operation that failed (check-login, theme-settings.get, ...)
	Message   string    `json:"message"`    // Generic message returned to the caller
	Detail    string    `json:"detail"`     // Raw error text
	RequestID string    `json:"request_id"` // X-Request-ID of the failing request
	Stack     string    `json:"stack"`
	Context   string    `json:"context"` // JSON-encoded extra fields
}
