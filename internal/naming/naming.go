package naming

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize converts a snake_case or kebab-case identifier into a title-cased
// phrase.
// Example: "missing_required_field" -> "Missing Required Field"
// Example: "date-time" -> "Date Time"
func Humanize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	return ToTitleCase(strings.Join(words, " "))
}

// ToTitleCase capitalizes the first letter of every word using English
// casing rules. Letters after the first are lowered.
// Example: "opening DATE" -> "Opening Date"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	// a Caser is stateful, so each call gets its own
	return cases.Title(language.English).String(s)
}

// Plural prefixes singular with n, adding an "s" unless n is 1.
// Example: Plural(2, "error") -> "2 errors"
func Plural(n int, singular string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + singular + "s"
}
