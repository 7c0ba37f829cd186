package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger routes GORM output to the request-scoped slog logger, so every query line
// carries the request id of the call that issued it
type GormLogger struct {
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
	HideSQL              bool
	LogLevel             gormlogger.LogLevel
}

// newLogger: local/dev log every query at debug, prod logs errors only and never the SQL text
func newLogger(cfg *config.Config) gormlogger.Interface {
	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	return &GormLogger{
		SlowThreshold:        defaultSlowThreshold,
		IgnoreRecordNotFound: true,
		HideSQL:              cfg.IsProduction(),
		LogLevel:             logLevel,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) from(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx).With("component", "gorm")
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.from(ctx).InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.from(ctx).WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.from(ctx).ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace reports failed and slow statements; everything else is debug noise
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []any{"elapsed", elapsed.String(), "rows", rows}
	if !l.HideSQL {
		fields = append(fields, "sql", sql)
	}

	switch {
	case err != nil && l.LogLevel >= gormlogger.Error && !(l.IgnoreRecordNotFound && errors.Is(err, gorm.ErrRecordNotFound)):
		// A cancelled request is the caller's doing, not a database fault
		if errors.Is(err, context.Canceled) {
			l.from(ctx).WarnContext(ctx, "Database query cancelled", fields...)
			return
		}
		l.from(ctx).ErrorContext(ctx, "Database query error", append(fields, "error", err)...)

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		l.from(ctx).WarnContext(ctx, "Slow SQL query detected", append(fields, "threshold", l.SlowThreshold.String())...)

	case l.LogLevel >= gormlogger.Info:
		l.from(ctx).DebugContext(ctx, "SQL query executed", fields...)
	}
}
