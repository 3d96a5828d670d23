package logger

import (
	"log/slog"

	"wallet_risk_analyzer/internal/app/port"
)

// slogAdapter implements port.Logger on top of the global slog logger.
type slogAdapter struct {
	base *slog.Logger
}

// NewSlogAdapter returns a port.Logger writing through the logger installed by Init.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) logger() *slog.Logger {
	if a.base != nil {
		return a.base
	}
	ensureInitialized()
	return globalLogger
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.logger().Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.logger().Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.logger().Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.logger().Error(msg, args...)
}

// With binds args to a derived logger.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{base: a.logger().With(args...)}
}

type nopLogger struct{}

// NewNopLogger returns a port.Logger that discards everything. Used in tests.
func NewNopLogger() port.Logger {
	return nopLogger{}
}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) port.Logger { return n }
