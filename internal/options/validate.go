// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/recordcheck/recorderrors"

// Source names one candidate input of an operation and whether it was set.
type Source struct {
	Name string
	Set  bool
}

// RequireExactlyOne ensures exactly one of the sources is set.
// option names the input in the returned *recorderrors.ConfigError.
func RequireExactlyOne(option string, sources ...Source) error {
	set := countSet(sources)
	if set == 0 {
		return &recorderrors.ConfigError{
			Option:  option,
			Message: "must specify an input source (" + names(sources) + ")",
		}
	}
	if set > 1 {
		return &recorderrors.ConfigError{
			Option:  option,
			Value:   set,
			Message: "must specify exactly one input source (" + names(sources) + ")",
		}
	}
	return nil
}

// AllowAtMostOne ensures no more than one of the sources is set. Used for
// optional inputs such as an explicit schema that may fall back to a default.
func AllowAtMostOne(option string, sources ...Source) error {
	if set := countSet(sources); set > 1 {
		return &recorderrors.ConfigError{
			Option:  option,
			Value:   set,
			Message: "at most one of " + names(sources) + " may be set",
		}
	}
	return nil
}

func countSet(sources []Source) int {
	n := 0
	for _, s := range sources {
		if s.Set {
			n++
		}
	}
	return n
}

func names(sources []Source) string {
	out := ""
	for i, s := range sources {
		if i > 0 {
			out += ", "
		}
		out += s.Name
	}
	return out
}
