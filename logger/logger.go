package logger

import (
	"context"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewLogger builds a zap logger.
// level: "debug", "info", "warn", "error" (default "info")
// format: "json" or "console" (default "json")
func NewLogger(level, format, serviceName string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	if serviceName != "" {
		base = base.With(zap.String("service", serviceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		base = base.With(zap.String("hostname", hostname))
	}

	return base, nil
}

// GormLogger writes gorm's logs through zap at matching levels. Failed
// statements go out at Error and slow ones at Warn.
type GormLogger struct {
	Log                       *zap.Logger
	Level                     gormlogger.LogLevel
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// NewGormLogger creates a gorm logger reporting warnings and errors
func NewGormLogger(log *zap.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		Log:                       log,
		Level:                     gormlogger.Warn,
		SlowThreshold:             slowThreshold,
		IgnoreRecordNotFoundError: true,
	}
}

// LogMode implements gorm.io/gorm/logger.Interface.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.Level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Info {
		l.Log.Sugar().Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Warn {
		l.Log.Sugar().Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Error {
		l.Log.Sugar().Errorf(msg, args...)
	}
}

// Trace logs one executed statement
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.Level >= gormlogger.Error &&
		!(l.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		l.Log.Error("query failed", zap.String("sql", sql), zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed), zap.Error(err))
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.Log.Warn("slow query", zap.String("sql", sql), zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed), zap.Duration("threshold", l.SlowThreshold))
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		l.Log.Info("query", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	}
}

// ParamsFilter keeps bound values, password hashes among them, out of the logs
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}
