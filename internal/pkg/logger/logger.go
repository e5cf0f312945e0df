package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *slog.Logger
	globalMu     sync.RWMutex
)

// New builds the production zap logger for the given level and makes it the
// backend of the process-wide slog default. A non-empty file is written in addition to stderr.
func New(levelStr, file string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = level > zapcore.DebugLevel
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	InitSlog(zapLogger)
	return zapLogger, nil
}

// InitSlog routes slog through zap.
func InitSlog(zapLogger *zap.Logger) {
	l := slog.New(zapslog.NewHandler(zapLogger.Core()))

	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()

	slog.SetDefault(l)
}

func current() *slog.Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l == nil {
		return slog.Default()
	}
	return l
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}
