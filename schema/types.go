package schema

import "github.com/erraggy/recordcheck/internal/valueutil"

// Type is a JSON data type name a FieldSpec may declare.
type Type string

// Supported type names.
const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
	TypeNull    Type = "null"
)

var knownTypes = map[Type]bool{
	TypeString:  true,
	TypeInteger: true,
	TypeNumber:  true,
	TypeBoolean: true,
	TypeArray:   true,
	TypeObject:  true,
	TypeNull:    true,
}

// Accepts reports whether a value of the given kind satisfies this type.
// Integers satisfy "number"; only integral numbers satisfy "integer".
func (t Type) Accepts(k valueutil.Kind) bool {
	switch t {
	case TypeNumber:
		return k.IsNumeric()
	case TypeInteger:
		return k == valueutil.KindInteger
	default:
		return string(t) == string(k)
	}
}

// Format names with a built-in check. Other format names are accepted in
// schema documents but not enforced.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
	FormatEmail    = "email"
	FormatURI      = "uri"
)

var knownFormats = map[string]bool{
	FormatDate:     true,
	FormatDateTime: true,
	FormatEmail:    true,
	FormatURI:      true,
}

// IsKnownFormat reports whether the named format is enforced.
func IsKnownFormat(name string) bool {
	return knownFormats[name]
}
