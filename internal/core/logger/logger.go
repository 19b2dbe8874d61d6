package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// Init initializes the global logger.
// For "development" env, it produces pretty console logs.
// For "production" env, it produces JSON logs with sampling.
func Init(environment string, level string) error {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := zapcore.ParseLevel(level)
	if err == nil {
		config.Level = zap.NewAtomicLevelAt(l)
	}

	logger, err := config.Build(zap.Fields(zap.String("service", "storefront-gateway")))
	if err != nil {
		return err
	}

	globalLogger = logger
	return nil
}

// Get returns the global logger instance.
// If not initialized, it returns a no-op logger to prevent panics.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// ForSession returns a child logger tagged with the shopper session and request ray id.
// Empty values are omitted.
func ForSession(sessionID, rayID string) *zap.Logger {
	fields := make([]zap.Field, 0, 2)
	if sessionID != "" {
		fields = append(fields, zap.String("session_id", sessionID))
	}
	if rayID != "" {
		fields = append(fields, zap.String("ray_id", rayID))
	}
	return Get().With(fields...)
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
