// Package logger holds the process-wide zap logger of Incident Lens.
//
// The level lives in a zap.AtomicLevel shared by every core, so the admin
// log-level endpoint changes it without a restart. Every entry carries the
// service name.
//
// Import Path: incidentlens.io/lens/internal/pkg/logger
package logger

import (
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every entry as the "service" field.
const ServiceName = "incident-lens"

// Formats accepted by Init.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var (
	global      *zap.Logger
	atomicLevel = zap.NewAtomicLevel()
	once        sync.Once

	nop = zap.NewNop()
)

// Init builds the global logger once. An empty format means JSON.
func Init(level, format string) error {
	var initErr error
	once.Do(func() {
		if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
			initErr = fmt.Errorf("parse log level %q: %w", level, err)
			return
		}
		cfg, err := newConfig(format)
		if err != nil {
			initErr = err
			return
		}

		l, err := cfg.Build(zap.AddCallerSkip(1), zap.Fields(zap.String("service", ServiceName)))
		if err != nil {
			initErr = fmt.Errorf("build logger: %w", err)
			return
		}
		global = l
	})
	return initErr
}

func newConfig(format string) (zap.Config, error) {
	var cfg zap.Config
	switch format {
	case "", FormatJSON:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		// Request failures are logged at error level; a stack per 500 is noise.
		cfg.DisableStacktrace = true
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatJSON, FormatConsole)
	}
	cfg.Level = atomicLevel
	return cfg, nil
}

// SetLevel changes the level of every logger built by Init.
func SetLevel(level string) error {
	return atomicLevel.UnmarshalText([]byte(level))
}

// GetLevel returns the current log level.
func GetLevel() zapcore.Level {
	return atomicLevel.Level()
}

// L returns the global logger, or a no-op logger before Init so the store
// and loader can run from tools and tests that never configure logging.
func L() *zap.Logger {
	if global == nil {
		return nop
	}
	return global
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { L().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { L().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

// LevelHandler serves the AtomicLevel endpoint behind /api/admin/log-level.
//
//	GET                      → {"level":"info"}
//	PUT -d '{"level":"debug"}' → changes level
func LevelHandler() http.Handler {
	return atomicLevel
}

// Sync flushes buffered entries. It is a no-op before Init.
func Sync() error {
	if global == nil {
		return nil
	}
	return global.Sync()
}
