package schema

import (
	"io/fs"

	"github.com/erraggy/recordcheck/internal/options"
	"github.com/erraggy/recordcheck/recorderrors"
)

// Option is a function that configures a schema load.
type Option func(*loadConfig) error

// loadConfig holds configuration for a schema load.
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	dataName string
	name     *string

	fsys           fs.FS
	metaValidation bool
	logger         Logger
}

func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		logger: NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireExactlyOne("schema source",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithBytes", Set: cfg.data != nil},
		options.Source{Name: "WithName", Set: cfg.name != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath loads the schema from a file. $ref documents are resolved
// relative to the file's directory.
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		if path == "" {
			return &recorderrors.ConfigError{Option: "WithFilePath", Message: "path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithBytes loads the schema from an in-memory JSON or YAML document.
// name identifies the document in errors and in relative $ref resolution;
// combine with WithFS when the document references others.
func WithBytes(name string, data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &recorderrors.ConfigError{Option: "WithBytes", Message: "data cannot be nil"}
		}
		if name == "" {
			name = "schema"
		}
		cfg.data = data
		cfg.dataName = name
		return nil
	}
}

// WithName loads a schema by name (e.g., "conferences") from the
// filesystem given by WithFS, or from the built-in schemas.
func WithName(name string) Option {
	return func(cfg *loadConfig) error {
		if name == "" {
			return &recorderrors.ConfigError{Option: "WithName", Message: "name cannot be empty"}
		}
		cfg.name = &name
		return nil
	}
}

// WithFS sets the filesystem used by WithName lookups and $ref resolution.
func WithFS(fsys fs.FS) Option {
	return func(cfg *loadConfig) error {
		if fsys == nil {
			return &recorderrors.ConfigError{Option: "WithFS", Message: "filesystem cannot be nil"}
		}
		cfg.fsys = fsys
		return nil
	}
}

// WithMetaValidation checks every composed document against the JSON
// Schema 2020-12 meta-schema before conversion. Documents using the
// field-level `required: true` flag do not pass this check.
// Default: false
func WithMetaValidation(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.metaValidation = enabled
		return nil
	}
}

// WithLogger sets a structured logger for load diagnostics.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
