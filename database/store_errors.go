package database

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error classes counted by the gorm logger.
const (
	ErrorClassNone        = ""
	ErrorClassBusy        = "busy"
	ErrorClassLocked      = "locked"
	ErrorClassUnavailable = "unavailable"
	ErrorClassInvalid     = "invalid_input"
	ErrorClassOther       = "other"
)

var (
	busyErrors        uint64
	lockedErrors      uint64
	unavailableErrors uint64
	otherErrors       uint64
)

// ClassifyError buckets a driver error. Context cancellation is not a store failure.
func ClassifyError(err error) string {
	if err == nil {
		return ErrorClassNone
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorClassNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return ErrorClassUnavailable
		case pgErr.Code == "55P03", pgErr.Code == "40P01":
			return ErrorClassLocked
		case strings.HasPrefix(pgErr.Code, "22"):
			return ErrorClassInvalid
		default:
			return ErrorClassOther
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "sqlite_locked") || strings.Contains(msg, "database table is locked"):
		return ErrorClassLocked
	case strings.Contains(msg, "sqlite_busy") || strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy timeout"):
		return ErrorClassBusy
	case strings.Contains(msg, "database is closed") || strings.Contains(msg, "connection refused") || strings.Contains(msg, "bad connection"):
		return ErrorClassUnavailable
	default:
		return ErrorClassOther
	}
}

func recordStoreError(err error) {
	switch ClassifyError(err) {
	case ErrorClassBusy:
		atomic.AddUint64(&busyErrors, 1)
	case ErrorClassLocked:
		atomic.AddUint64(&lockedErrors, 1)
	case ErrorClassUnavailable:
		atomic.AddUint64(&unavailableErrors, 1)
	case ErrorClassInvalid, ErrorClassOther:
		atomic.AddUint64(&otherErrors, 1)
	}
}

// StoreErrorCounts is a snapshot of classified store errors since start.
type StoreErrorCounts struct {
	Busy        uint64 `json:"busy"`
	Locked      uint64 `json:"locked"`
	Unavailable uint64 `json:"unavailable"`
	Other       uint64 `json:"other"`
}

// StoreErrors returns the current error counters
func StoreErrors() StoreErrorCounts {
	return StoreErrorCounts{
		Busy:        atomic.LoadUint64(&busyErrors),
		Locked:      atomic.LoadUint64(&lockedErrors),
		Unavailable: atomic.LoadUint64(&unavailableErrors),
		Other:       atomic.LoadUint64(&otherErrors),
	}
}
