package core

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"savecart/models"
)

const defaultMaxErrorLogs = 100

// ErrorLogger writes server-side diagnostics to the structured log and keeps the
// most recent entries in memory for the admin error-log endpoint.
type ErrorLogger struct {
	logs      []*models.ErrorLog
	mu        sync.RWMutex
	maxLogs   int
	idCounter int
	logger    *slog.Logger
}

// NewErrorLogger creates an error logger keeping at most maxLogs entries.
// A nil logger falls back to slog.Default at write time.
func NewErrorLogger(maxLogs int, logger *slog.Logger) *ErrorLogger {
	if maxLogs <= 0 {
		maxLogs = defaultMaxErrorLogs
	}
	return &ErrorLogger{
		logs:    make([]*models.ErrorLog, 0, maxLogs),
		maxLogs: maxLogs,
		logger:  logger,
	}
}

// Entry describes one diagnostic
type Entry struct {
	Level     string // ERROR or WARN
	Source    string
	Message   string
	Err       error
	RequestID string
	Context   map[string]any
}

// Record logs the entry and keeps it in the ring buffer
func (e *ErrorLogger) Record(entry Entry) {
	if entry.Level == "" {
		entry.Level = "ERROR"
	}
	detail := ""
	if entry.Err != nil {
		detail = entry.Err.Error()
	}

	e.write(entry, detail)

	stack := getStackTrace(3)

	contextJSON := ""
	if len(entry.Context) > 0 {
		if data, err := json.Marshal(entry.Context); err == nil {
			contextJSON = string(data)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.logs) >= e.maxLogs {
		e.logs = e.logs[1:]
	}

	e.idCounter++
	e.logs = append(e.logs, &models.ErrorLog{
		ID:        e.idCounter,
		Timestamp: time.Now(),
		Level:     entry.Level,
		Source:    entry.Source,
		Message:   entry.Message,
		Detail:    detail,
		RequestID: entry.RequestID,
		Stack:     stack,
		Context:   contextJSON,
	})
}

func (e *ErrorLogger) write(entry Entry, detail string) {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"source", entry.Source, "request_id", entry.RequestID}
	if detail != "" {
		attrs = append(attrs, "error", detail)
	}
	for k, v := range entry.Context {
		attrs = append(attrs, k, v)
	}
	if entry.Level == "WARN" {
		logger.Warn(entry.Message, attrs...)
		return
	}
	logger.Error(entry.Message, attrs...)
}

// GetErrorLogs returns recent entries, latest first
func (e *ErrorLogger) GetErrorLogs() []*models.ErrorLog {
	e.mu.RLock()
	defer e.mu.RUnlock()

	total := len(e.logs)
	result := make([]*models.ErrorLog, total)
	for i := 0; i < total; i++ {
		result[i] = e.logs[total-1-i]
	}
	return result
}

// ClearErrorLogs removes all entries
func (e *ErrorLogger) ClearErrorLogs() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logs = make([]*models.ErrorLog, 0, e.maxLogs)
	e.idCounter = 0
}

func getStackTrace(skip int) string {
	const maxDepth = 10
	var stack string

	for i := skip; i < skip+maxDepth; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		funcName := "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
		}

		stack += fmt.Sprintf("%s:%d %s\n", file, line, funcName)
	}

	return stack
}
