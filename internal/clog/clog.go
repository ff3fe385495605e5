// Package clog is a small leveled-logging wrapper around zap. Its calling
// convention — Infof/Warnf/Errorf/Fatalf plus a With(fields...) for
// structured context — mirrors the cclog package ClusterCockpit-cc-backend
// threads through its storage components.
package clog

import (
	"go.uber.org/zap"
)

// Logger is the leveled logger handed to WhisperCache and the CLI.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a Logger at the given level ("debug", "info", "warn", "error").
// An unrecognized level defaults to "info".
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level.SetLevel(zap.InfoLevel)
	}

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: base.Sugar()}, nil
}

// NewNop returns a Logger that discards everything, for callers that don't
// want to wire one in explicitly.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }
func (l *Logger) Fatalf(format string, args ...any) { l.sugar.Fatalf(format, args...) }

// With attaches structured key-value pairs to every subsequent log call on
// the returned Logger.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

// Sync flushes any buffered log entries; callers should defer it from main.
func (l *Logger) Sync() error { return l.sugar.Sync() }
