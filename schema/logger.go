package schema

import (
	"context"
	"log/slog"
)

// Logger is the interface recordcheck uses for structured logging.
//
// It is compatible with log/slog conventions: attrs are alternating
// key-value pairs.
//
//	logger.Debug("resolved reference", "ref", "elements/title.yml", "schema", "conferences")
//
// Use [NewSlogAdapter] to wrap a *slog.Logger. The recordcheck command wires
// a zerolog logger through the same interface.
type Logger interface {
	// Debug logs at debug level. Use for detailed diagnostic information.
	Debug(msg string, attrs ...any)

	// Info logs at info level.
	Info(msg string, attrs ...any)

	// Warn logs at warn level. Use for tolerated problems such as unknown formats.
	Warn(msg string, attrs ...any)

	// Error logs at error level.
	Error(msg string, attrs ...any)

	// With returns a new Logger with the given attributes prepended to every log.
	With(attrs ...any) Logger
}

// NopLogger is a no-op logger that discards all output.
// It is the default logger used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

var _ Logger = NopLogger{}

// SlogAdapter implements Logger on top of a *slog.Logger. Records are
// dropped before attrs are attached when the handler does not enable the
// level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogAdapter{logger: logger}
}

func (s SlogAdapter) log(level slog.Level, msg string, attrs []any) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	s.logger.Log(ctx, level, msg, attrs...)
}

// Debug implements Logger.
func (s SlogAdapter) Debug(msg string, attrs ...any) { s.log(slog.LevelDebug, msg, attrs) }

// Info implements Logger.
func (s SlogAdapter) Info(msg string, attrs ...any) { s.log(slog.LevelInfo, msg, attrs) }

// Warn implements Logger.
func (s SlogAdapter) Warn(msg string, attrs ...any) { s.log(slog.LevelWarn, msg, attrs) }

// Error implements Logger.
func (s SlogAdapter) Error(msg string, attrs ...any) { s.log(slog.LevelError, msg, attrs) }

// With implements Logger.
func (s SlogAdapter) With(attrs ...any) Logger {
	return SlogAdapter{logger: s.logger.With(attrs...)}
}

var _ Logger = SlogAdapter{}
