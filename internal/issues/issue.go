// Package issues provides the violation type shared by the validator,
// the CLI and the MCP server.
package issues

import (
	"fmt"

	"github.com/erraggy/recordcheck/internal/severity"
)

// Issue represents a single nonconformance between a record and a schema.
type Issue struct {
	// Path is the field path to the offending value (e.g., "address[0].place").
	// The empty string denotes the record root.
	Path string `json:"path" yaml:"path"`
	// Code is the machine-readable violation kind (e.g., "type_mismatch")
	Code string `json:"code" yaml:"code"`
	// Message is a human-readable description of the violation
	Message string `json:"message" yaml:"message"`
	// Severity indicates whether the issue invalidates the record
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Expected describes what the schema requires (optional)
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	// Actual describes what the record contains (optional)
	Actual string `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// DisplayPath returns the path, using "(root)" for the record root.
func (i Issue) DisplayPath() string {
	if i.Path == "" {
		return "(root)"
	}
	return i.Path
}

// String returns a formatted string representation of the issue.
// Errors are prefixed with "✗" and warnings with "⚠".
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	default:
		symbol = "?"
	}
	return fmt.Sprintf("%s %s [%s]: %s", symbol, i.DisplayPath(), i.Code, i.Message)
}
