// Package naming turns machine identifiers such as violation codes and
// field names into human-readable headings for CLI and MCP output.
package naming
