package logger

import "log/slog"

// Interface is the structured logging surface injected into services, use
// cases, and background jobs. Call sites pass alternating key/value pairs;
// level filtering happens in the underlying slog handler.
type Interface interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	// Fatalw logs at error level and panics. Entrypoints only, for
	// unrecoverable startup failures.
	Fatalw(msg string, keysAndValues ...interface{})

	// With returns a child logger that stamps the given pairs on every
	// record, typically a component name.
	With(keysAndValues ...interface{}) Interface
}

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger wraps the global slog logger in the injectable interface.
func NewLogger() Interface {
	return &slogLogger{
		logger: Get(),
	}
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *slogLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
	panic("fatal error")
}

func (l *slogLogger) With(keysAndValues ...interface{}) Interface {
	return &slogLogger{
		logger: l.logger.With(keysAndValues...),
	}
}
