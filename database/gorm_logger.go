package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// storeMetricsLogger counts classified query errors before delegating to gorm's logger.
type storeMetricsLogger struct {
	inner logger.Interface
}

func (l storeMetricsLogger) LogMode(level logger.LogLevel) logger.Interface {
	return storeMetricsLogger{inner: l.inner.LogMode(level)}
}

func (l storeMetricsLogger) Info(ctx context.Context, s string, args ...interface{}) {
	l.inner.Info(ctx, s, args...)
}

func (l storeMetricsLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	l.inner.Warn(ctx, s, args...)
}

func (l storeMetricsLogger) Error(ctx context.Context, s string, args ...interface{}) {
	l.inner.Error(ctx, s, args...)
}

func (l storeMetricsLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	// a missing row is an expected outcome for lookups
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		recordStoreError(err)
	}
	l.inner.Trace(ctx, begin, fc, err)
}
