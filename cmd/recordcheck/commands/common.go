// Package commands provides CLI command handlers for recordcheck.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/recordcheck/internal/logging"
	"github.com/erraggy/recordcheck/schema"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrInvalid is returned by commands whose input was processed successfully
// but failed validation. The caller maps it to exit code 1 without printing
// an additional error message.
var ErrInvalid = errors.New("validation failed")

// Streams holds the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
// Returns an error if marshaling fails.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FormatRecordPath returns a display-friendly path for a record.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatRecordPath(recordPath string) string {
	if recordPath == StdinFilePath {
		return "<stdin>"
	}
	return recordPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// NewLogger builds the human-readable diagnostic logger used by the
// commands. An empty level means warnings and above.
func NewLogger(level string, w io.Writer) (schema.Logger, error) {
	cfg := logging.DefaultConfig()
	if level != "" {
		cfg.Level = level
	}
	zl, err := logging.New(cfg, w)
	if err != nil {
		return nil, err
	}
	return logging.NewZerologAdapter(zl), nil
}
