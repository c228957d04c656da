// Package valueutil classifies and compares decoded record values.
//
// Records arrive as the generic values produced by encoding/json or YAML
// decoding (map[string]any, []any, float64, int, json.Number ...) or as
// arbitrary Go maps and slices. The helpers here map them onto the JSON
// data model: null, boolean, integer, number, string, array, object.
//
// [Hash] and [Equal] implement structural equality for uniqueness checks.
// Numbers compare by exact value (1 and 1.0 are equal, 2^53 and 2^53+1 are
// not) and object key order is irrelevant. Pointers are followed.
package valueutil
