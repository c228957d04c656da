package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/recordcheck/schema"
)

// SchemaFlags contains flags for the schema command
type SchemaFlags struct {
	SchemaFile string
	Check      bool
	Format     string
	LogLevel   string
}

// SetupSchemaFlags creates and configures a FlagSet for the schema command.
func SetupSchemaFlags() (*flag.FlagSet, *SchemaFlags) {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	flags := &SchemaFlags{}

	fs.StringVar(&flags.SchemaFile, "schema-file", "", "path to a schema document to describe")
	fs.BoolVar(&flags.Check, "check", false, "check every schema document against the schema dialect")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.LogLevel, "log-level", "", "diagnostic log level: debug, info, warn, error (default warn)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: recordcheck schema [flags] [name]\n\n")
		Writef(fs.Output(), "List the built-in record schemas, or describe the fields of one schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  recordcheck schema\n")
		Writef(fs.Output(), "  recordcheck schema conferences\n")
		Writef(fs.Output(), "  recordcheck schema --check --schema-file ./schemas/events.yml\n")
		Writef(fs.Output(), "  recordcheck schema --format json conferences | jq '.fields[].path'\n")
	}

	return fs, flags
}

// schemaSummary is one row of the built-in schema listing.
type schemaSummary struct {
	Name       string `json:"name" yaml:"name"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	FieldCount int    `json:"fieldCount" yaml:"fieldCount"`
}

// schemaDescription is the structured form of a described schema.
type schemaDescription struct {
	Name      string             `json:"name" yaml:"name"`
	Title     string             `json:"title,omitempty" yaml:"title,omitempty"`
	Documents []string           `json:"documents" yaml:"documents"`
	Fields    []schema.FieldInfo `json:"fields" yaml:"fields"`
}

// HandleSchema executes the schema command
func HandleSchema(args []string, streams Streams) error {
	fs, flags := SetupSchemaFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() > 1 || (fs.NArg() == 1 && flags.SchemaFile != "") {
		fs.Usage()
		return fmt.Errorf("schema command takes at most one schema name, or --schema-file")
	}

	logger, err := NewLogger(flags.LogLevel, streams.Err)
	if err != nil {
		return err
	}

	var opt schema.Option
	switch {
	case flags.SchemaFile != "":
		opt = schema.WithFilePath(flags.SchemaFile)
	case fs.NArg() == 1:
		opt = schema.WithName(fs.Arg(0))
	default:
		return listSchemas(streams, flags.Format)
	}

	s, err := schema.Load(opt, schema.WithMetaValidation(flags.Check), schema.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	return describeSchema(streams, s, flags.Format)
}

func listSchemas(streams Streams, format string) error {
	var summaries []schemaSummary
	for _, name := range schema.BuiltinNames() {
		s, err := schema.Builtin(name)
		if err != nil {
			return fmt.Errorf("loading built-in schema %s: %w", name, err)
		}
		summaries = append(summaries, schemaSummary{
			Name:       name,
			Title:      s.Root().Title,
			FieldCount: len(s.Fields()),
		})
	}

	if format != FormatText {
		return OutputStructured(streams.Out, summaries, format)
	}

	tw := tabwriter.NewWriter(streams.Out, 0, 4, 2, ' ', 0)
	Writef(tw, "NAME\tTITLE\tFIELDS\n")
	for _, s := range summaries {
		Writef(tw, "%s\t%s\t%d\n", s.Name, s.Title, s.FieldCount)
	}
	return tw.Flush()
}

func describeSchema(streams Streams, s *schema.Schema, format string) error {
	desc := schemaDescription{
		Name:      s.Name(),
		Title:     s.Root().Title,
		Documents: s.Documents(),
		Fields:    s.Fields(),
	}

	if format != FormatText {
		return OutputStructured(streams.Out, desc, format)
	}

	Writef(streams.Out, "Schema: %s", desc.Name)
	if desc.Title != "" {
		Writef(streams.Out, " (%s)", desc.Title)
	}
	Writef(streams.Out, "\nDocuments: %s\n\n", strings.Join(desc.Documents, ", "))

	tw := tabwriter.NewWriter(streams.Out, 0, 4, 2, ' ', 0)
	Writef(tw, "PATH\tTYPE\tREQUIRED\tCONSTRAINTS\n")
	for _, f := range desc.Fields {
		types := strings.Join(f.Types, "|")
		if types == "" {
			types = "any"
		}
		required := ""
		if f.Required {
			required = "yes"
		}
		Writef(tw, "%s\t%s\t%s\t%s\n", f.Path, types, required, constraints(f))
	}
	return tw.Flush()
}

func constraints(f schema.FieldInfo) string {
	var parts []string
	if f.Unique {
		parts = append(parts, "unique")
	}
	if f.Format != "" {
		parts = append(parts, "format="+f.Format)
	}
	if f.Pattern != "" {
		parts = append(parts, "pattern="+f.Pattern)
	}
	return strings.Join(parts, " ")
}
