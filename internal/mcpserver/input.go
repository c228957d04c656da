package mcpserver

import (
	"fmt"
	"os"

	"github.com/erraggy/recordcheck/schema"
	"github.com/erraggy/recordcheck/validator"
)

// recordInput represents the two ways a record can be provided to a tool.
// Exactly one of File or Content must be set.
type recordInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML record on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline record content (JSON or YAML)"`
}

// resolve reads and decodes the record.
func (r recordInput) resolve() (any, error) {
	switch {
	case r.File != "" && r.Content != "":
		return nil, fmt.Errorf("exactly one of file or content must be provided for the record (got 2)")
	case r.File != "":
		data, err := os.ReadFile(r.File)
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		return validator.DecodeRecord(r.File, data)
	case r.Content != "":
		if err := checkInlineSize(r.Content); err != nil {
			return nil, err
		}
		return validator.DecodeRecord("content", []byte(r.Content))
	default:
		return nil, fmt.Errorf("exactly one of file or content must be provided for the record (got 0)")
	}
}

// schemaInput represents the three ways a schema can be provided to a tool.
// At most one of Name, File, or Content may be set.
type schemaInput struct {
	Name    string `json:"name,omitempty"    jsonschema:"Name of a built-in schema (e.g. conferences)"`
	File    string `json:"file,omitempty"    jsonschema:"Path to a schema document on disk; relative $refs resolve next to it"`
	Content string `json:"content,omitempty" jsonschema:"Inline schema document (JSON or YAML) without external $refs"`
}

func (s schemaInput) count() int {
	n := 0
	for _, v := range []string{s.Name, s.File, s.Content} {
		if v != "" {
			n++
		}
	}
	return n
}

// isZero reports whether no schema source was given.
func (s schemaInput) isZero() bool {
	return s.count() == 0
}

// resolve loads the schema, using the cache for file and content inputs.
func (s schemaInput) resolve() (*schema.Schema, error) {
	if n := s.count(); n != 1 {
		return nil, fmt.Errorf("exactly one of name, file, or content must be provided for the schema (got %d)", n)
	}
	if s.Name != "" {
		return schema.Builtin(s.Name)
	}
	if s.Content != "" {
		if err := checkInlineSize(s.Content); err != nil {
			return nil, err
		}
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached := schemaCache.get(key); cached != nil {
			logger.Debug("schema cache hit", "schema", cached.Name())
			return cached, nil
		}
	}

	var opt schema.Option
	if s.File != "" {
		opt = schema.WithFilePath(s.File)
	} else {
		opt = schema.WithBytes("content.yml", []byte(s.Content))
	}
	loaded, err := schema.Load(opt, schema.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	// Cache the schema for future calls (key is empty when caching is disabled).
	if key != "" {
		var deps map[string]int64
		if s.File != "" {
			if deps, err = fileDeps(s.File, loaded); err != nil {
				logger.Debug("schema not cached", "error", err)
				return loaded, nil
			}
		}
		schemaCache.put(key, loaded, deps, cfg.CacheTTL)
	}
	return loaded, nil
}

func checkInlineSize(content string) error {
	if int64(len(content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RECORDCHECK_MAX_INLINE_SIZE to increase",
			len(content), cfg.MaxInlineSize)
	}
	return nil
}
