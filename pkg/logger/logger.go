package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

var (
	globalLogger = zap.NewNop()
	globalMu     sync.RWMutex
)

// SetupLogger builds the process logger for env and installs it as the global one.
// An empty or unknown level keeps the env default.
func SetupLogger(env string, level ...string) *zap.Logger {
	var cfg zap.Config
	switch env {
	case envLocal, envDev:
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	if len(level) > 0 && level[0] != "" {
		if lvl, err := zapcore.ParseLevel(level[0]); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewExample()
	}

	SetLogger(l)
	return l
}

// SetLogger replaces the global logger and returns a function restoring the previous one.
func SetLogger(l *zap.Logger) func() {
	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()
	return func() { SetLogger(prev) }
}

func Logger() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger().Fatal(msg, fields...)
}

func Sync() {
	_ = Logger().Sync()
}
