// Package severity provides the severity levels attached to record violations.
//
// Errors make a record invalid. Warnings are informational findings (for
// example an undeclared field in open-world mode) that never affect the
// validity of a record.
package severity

// Severity indicates how a violation affects the validity of a record.
type Severity int

const (
	// SeverityError marks a violation that makes the record invalid.
	SeverityError Severity = iota

	// SeverityWarning marks a finding that is reported but tolerated.
	SeverityWarning
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText renders the level by name so JSON and YAML reports stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
