package validator

import (
	"github.com/erraggy/recordcheck/internal/stringutil"
	"github.com/erraggy/recordcheck/schema"
)

// formatCheckers maps enforced format names to their checks. Formats not
// listed here are accepted without checking.
var formatCheckers = map[string]func(string) bool{
	schema.FormatDate:     stringutil.IsValidDate,
	schema.FormatDateTime: stringutil.IsValidDateTime,
	schema.FormatEmail:    stringutil.IsValidEmail,
	schema.FormatURI:      stringutil.IsValidURI,
}

// checkFormat reports whether s satisfies the named format.
func checkFormat(format, s string) bool {
	check, ok := formatCheckers[format]
	if !ok {
		return true
	}
	return check(s)
}
