package handlers

import (
	"net/http"

	"savecart/core"

	"github.com/gin-gonic/gin"
)

// WriteResult is the envelope returned by settings writes
type WriteResult struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, WriteResult{Success: true, Data: data})
}

func writeFailed(c *gin.Context, status int, message string, fields map[string]string) {
	c.JSON(status, WriteResult{Success: false, Error: message, Fields: fields})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// logFailure records a server-side failure with the request id attached
func (h *Handler) logFailure(c *gin.Context, source, message string, err error) {
	h.errors.Record(core.Entry{
		Level:     "ERROR",
		Source:    source,
		Message:   message,
		Err:       err,
		RequestID: RequestIDFrom(c),
		Context: map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		},
	})
}
