// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes recordcheck validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"os"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/recordcheck"
	"github.com/erraggy/recordcheck/internal/logging"
	"github.com/erraggy/recordcheck/schema"
)

const serverInstructions = `recordcheck MCP server: validates metadata records (JSON or YAML) against declarative record schemas and describes those schemas.

Configuration: All defaults are configurable via RECORDCHECK_* environment variables set in your MCP client config.

Key settings:
- RECORDCHECK_VALIDATE_STRICT (default: false): report undeclared fields as errors
- RECORDCHECK_VALIDATE_WARNINGS (default: false): report undeclared fields as warnings
- RECORDCHECK_CACHE_ENABLED (default: true): cache schemas loaded from files or inline content
- RECORDCHECK_CACHE_MAX_SIZE (default: 16): maximum number of cached schemas
- RECORDCHECK_CACHE_TTL (default: 15m): lifetime of a cached schema
- RECORDCHECK_LIST_LIMIT (default: 100): default page size for violations and fields
- RECORDCHECK_LOG_LEVEL (default: warn): log level for stderr diagnostics

Schemas: when validate_record gets no schema, the record's "$schema" member selects a built-in schema by base name (".../conferences.json" selects "conferences"). Use list_schemas to see the built-in schemas and describe_schema to see their fields.`

// logger receives diagnostics from tool handlers. Run replaces it with a
// zerolog logger writing to stderr.
var logger schema.Logger = schema.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	zl, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: logging.FormatJSON}, os.Stderr)
	if err != nil {
		return err
	}
	logger = logging.NewZerologAdapter(zl).With("component", "mcpserver")

	if cfg.CacheEnabled {
		schemaCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "recordcheck", Version: recordcheck.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	logger.Info("serving MCP over stdio", "version", recordcheck.Version())
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_record",
		Description: "Validate a metadata record (JSON or YAML) against a record schema. Returns the valid flag, error counts per violation code and the violations with field paths such as address[0].place. The schema may be a built-in name, a schema file or inline content; when omitted the record's $schema member selects a built-in schema. Use strict=true to reject undeclared fields and warnings=true to list them without failing. Use offset/limit to paginate.",
	}, handleValidateRecord)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_schema",
		Description: "Describe a record schema as a flattened field list (path, types, required, unique, format, pattern). Array elements appear with a [] suffix, e.g. series[].name. Use offset/limit to paginate.",
	}, handleDescribeSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_schemas",
		Description: "List the built-in record schemas with their titles and field counts.",
	}, handleListSchemas)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	logger.Debug("tool call failed", "error", err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
