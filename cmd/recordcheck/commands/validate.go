package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/erraggy/recordcheck"
	"github.com/erraggy/recordcheck/internal/naming"
	"github.com/erraggy/recordcheck/schema"
	"github.com/erraggy/recordcheck/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Schema     string
	SchemaFile string
	Strict     bool
	Warnings   bool
	Quiet      bool
	Format     string
	LogLevel   string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Schema, "schema", "", "built-in schema name (default: selected by the record's $schema)")
	fs.StringVar(&flags.SchemaFile, "schema-file", "", "path to a schema document")
	fs.BoolVar(&flags.Strict, "strict", false, "report fields not declared in the schema as errors")
	fs.BoolVar(&flags.Warnings, "warnings", false, "report fields not declared in the schema as warnings")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.LogLevel, "log-level", "", "diagnostic log level: debug, info, warn, error (default warn)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: recordcheck validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate a JSON or YAML metadata record against a record schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  recordcheck validate conference.json\n")
		Writef(fs.Output(), "  recordcheck validate --schema conferences --strict conference.yaml\n")
		Writef(fs.Output(), "  recordcheck validate --schema-file ./schemas/events.yml event.json\n")
		Writef(fs.Output(), "  cat conference.json | recordcheck validate -q -\n")
		Writef(fs.Output(), "  recordcheck validate --format json conference.json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Record is valid\n")
		Writef(fs.Output(), "  1    Record is invalid, or it could not be checked\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command. It returns ErrInvalid when
// the record was checked and found invalid.
func HandleValidate(args []string, streams Streams) error {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	recordPath := fs.Arg(0)

	// Validate flags early to fail fast before reading anything
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Schema != "" && flags.SchemaFile != "" {
		return fmt.Errorf("--schema and --schema-file are mutually exclusive")
	}

	logger, err := NewLogger(flags.LogLevel, streams.Err)
	if err != nil {
		return err
	}

	opts := []validator.Option{
		validator.WithStrictMode(flags.Strict),
		validator.WithIncludeWarnings(flags.Warnings),
		validator.WithLogger(logger),
	}

	if recordPath == StdinFilePath {
		data, err := io.ReadAll(streams.In)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		opts = append(opts, validator.WithRecordBytes(data))
	} else {
		opts = append(opts, validator.WithRecordFile(recordPath))
	}

	switch {
	case flags.Schema != "":
		opts = append(opts, validator.WithSchemaName(flags.Schema))
	case flags.SchemaFile != "":
		s, err := schema.Load(schema.WithFilePath(flags.SchemaFile), schema.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("loading schema: %w", err)
		}
		opts = append(opts, validator.WithSchema(s))
	}

	startTime := time.Now()
	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("validating record: %w", err)
	}
	totalTime := time.Since(startTime)

	// Handle structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(streams.Out, result, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			return ErrInvalid
		}
		return nil
	}

	// Text output goes to stderr so stdout stays clean for pipelines
	if !flags.Quiet {
		writeValidateReport(streams.Err, recordPath, result, totalTime)
	}

	if !result.Valid {
		return ErrInvalid
	}
	return nil
}

func writeValidateReport(w io.Writer, recordPath string, result *validator.ValidationResult, totalTime time.Duration) {
	Writef(w, "Metadata Record Validator\n")
	Writef(w, "=========================\n\n")
	Writef(w, "recordcheck version: %s\n", recordcheck.Version())
	Writef(w, "Record: %s\n", FormatRecordPath(recordPath))
	Writef(w, "Schema: %s\n", result.SchemaName)
	Writef(w, "Total Time: %v\n\n", totalTime)

	if len(result.Errors) > 0 {
		Writef(w, "Errors (%d):\n", result.ErrorCount)
		for _, e := range result.Errors {
			Writef(w, "  %s\n", e.String())
		}
		Writef(w, "\n")

		counts := result.CountByCode()
		Writef(w, "By Code:\n")
		for _, code := range validator.Codes() {
			if n := counts[code]; n > 0 {
				Writef(w, "  %-24s %s\n", naming.Humanize(string(code)), naming.Plural(n, "error"))
			}
		}
		Writef(w, "\n")
	}

	if len(result.Warnings) > 0 {
		Writef(w, "Warnings (%d):\n", result.WarningCount)
		for _, warning := range result.Warnings {
			Writef(w, "  %s\n", warning.String())
		}
		Writef(w, "\n")
	}

	if result.Valid {
		Writef(w, "✓ Validation passed")
		if result.WarningCount > 0 {
			Writef(w, " with %s", naming.Plural(result.WarningCount, "warning"))
		}
		Writef(w, "\n")
		return
	}
	Writef(w, "✗ Validation failed: %s", naming.Plural(result.ErrorCount, "error"))
	if result.WarningCount > 0 {
		Writef(w, ", %s", naming.Plural(result.WarningCount, "warning"))
	}
	Writef(w, "\n")
}
