package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"missing_required_field", "Missing Required Field"},
		{"type_mismatch", "Type Mismatch"},
		{"date-time", "Date Time"},
		{"__leading", "Leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Humanize(tt.input))
		})
	}
}

func TestToTitleCase(t *testing.T) {
	assert.Equal(t, "Opening Date", ToTitleCase("opening DATE"))
	assert.Equal(t, "Élan", ToTitleCase("élan"))
	assert.Equal(t, "", ToTitleCase(""))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 errors", Plural(0, "error"))
	assert.Equal(t, "1 error", Plural(1, "error"))
	assert.Equal(t, "12 warnings", Plural(12, "warning"))
}
