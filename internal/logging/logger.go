// Package logging configures zerolog for the recordcheck command and MCP
// server and adapts it to the schema.Logger interface used by the library.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/erraggy/recordcheck/recorderrors"
	"github.com/erraggy/recordcheck/schema"
)

// Formats accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config holds logging configuration.
type Config struct {
	Level      string // trace, debug, info, warn, error, disabled
	Format     string // json, console
	TimeFormat string // time layout for the timestamp field, RFC3339 by default
}

// DefaultConfig returns the logging configuration used by the command line:
// warnings and above, human-readable.
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		Format:     FormatConsole,
		TimeFormat: time.Kitchen,
	}
}

// New builds a zerolog.Logger writing to out.
func New(cfg Config, out io.Writer) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), &recorderrors.ConfigError{Option: "log level", Value: cfg.Level, Message: "unknown level", Cause: err}
		}
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	switch cfg.Format {
	case "", FormatJSON:
	case FormatConsole:
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: timeFormat,
			NoColor:    true,
		}
	default:
		return zerolog.Nop(), &recorderrors.ConfigError{Option: "log format", Value: cfg.Format, Message: "must be json or console"}
	}

	return zerolog.New(out).
		Level(level).
		Hook(timestampHook{layout: timeFormat}), nil
}

// timestampHook stamps each event with the current time in layout. It
// stands in for Context.Timestamp, whose layout is the package-level
// zerolog.TimeFieldFormat.
type timestampHook struct {
	layout string
}

// Run implements zerolog.Hook.
func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(h.layout))
}

// ZerologAdapter implements schema.Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps l.
func NewZerologAdapter(l zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: l}
}

// Debug implements schema.Logger.
func (a *ZerologAdapter) Debug(msg string, attrs ...any) {
	a.logger.Debug().Fields(fields(attrs)).Msg(msg)
}

// Info implements schema.Logger.
func (a *ZerologAdapter) Info(msg string, attrs ...any) {
	a.logger.Info().Fields(fields(attrs)).Msg(msg)
}

// Warn implements schema.Logger.
func (a *ZerologAdapter) Warn(msg string, attrs ...any) {
	a.logger.Warn().Fields(fields(attrs)).Msg(msg)
}

// Error implements schema.Logger.
func (a *ZerologAdapter) Error(msg string, attrs ...any) {
	a.logger.Error().Fields(fields(attrs)).Msg(msg)
}

// With implements schema.Logger.
func (a *ZerologAdapter) With(attrs ...any) schema.Logger {
	return &ZerologAdapter{logger: a.logger.With().Fields(fields(attrs)).Logger()}
}

var _ schema.Logger = (*ZerologAdapter)(nil)

// fields converts slog-style alternating key-value pairs into a map zerolog
// accepts. A dangling key gets the value "!MISSING".
func fields(attrs []any) map[string]any {
	m := make(map[string]any, (len(attrs)+1)/2)
	for i := 0; i < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			key = fmt.Sprint(attrs[i])
		}
		if i+1 < len(attrs) {
			m[key] = attrs[i+1]
		} else {
			m[key] = "!MISSING"
		}
	}
	return m
}
