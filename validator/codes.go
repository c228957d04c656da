package validator

// Code identifies the kind of a violation.
type Code string

// Violation codes.
const (
	// CodeMissingRequiredField reports an absent required property.
	CodeMissingRequiredField Code = "missing_required_field"
	// CodeTypeMismatch reports a value whose kind is not among the declared types.
	CodeTypeMismatch Code = "type_mismatch"
	// CodePatternMismatch reports a string that does not fully match the pattern.
	CodePatternMismatch Code = "pattern_mismatch"
	// CodeFormatInvalid reports a string that fails its named format check.
	CodeFormatInvalid Code = "format_invalid"
	// CodeDuplicateItem reports a repeated element of a uniqueItems array.
	CodeDuplicateItem Code = "duplicate_item"
	// CodeUnknownField reports an undeclared property.
	CodeUnknownField Code = "unknown_field"
	// CodeValueNotAllowed reports a value outside the declared enum.
	CodeValueNotAllowed Code = "value_not_allowed"
	// CodeTooFewItems reports an array shorter than minItems.
	CodeTooFewItems Code = "too_few_items"
	// CodeTooShort reports a string shorter than minLength.
	CodeTooShort Code = "too_short"
	// CodeMaxDepthExceeded reports a value nested beyond the supported depth.
	CodeMaxDepthExceeded Code = "max_depth_exceeded"
)

// Codes lists every violation code in a stable order.
func Codes() []Code {
	return []Code{
		CodeMissingRequiredField,
		CodeTypeMismatch,
		CodePatternMismatch,
		CodeFormatInvalid,
		CodeDuplicateItem,
		CodeUnknownField,
		CodeValueNotAllowed,
		CodeTooFewItems,
		CodeTooShort,
		CodeMaxDepthExceeded,
	}
}

func (c Code) String() string {
	return string(c)
}
