package mcu

import "log/slog"

// Logger is an optional logging interface that can be provided to the
// controller. This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger. A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger.With("component", "mcu")}
}

func (l *SlogLogger) Debug(msg string, kv ...interface{}) { l.logger.Debug(msg, kv...) }
func (l *SlogLogger) Info(msg string, kv ...interface{})  { l.logger.Info(msg, kv...) }
func (l *SlogLogger) Error(msg string, kv ...interface{}) { l.logger.Error(msg, kv...) }

// Compile-time interface satisfaction check.
var _ Logger = (*SlogLogger)(nil)
