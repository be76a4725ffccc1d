// Package normalize provides serial canonicalization for format-insensitive comparison
package normalize

import "strings"

// Options controls which transformations Apply performs. Each toggle is
// independent; the zero value leaves the input untouched.
type Options struct {
	Uppercase    bool `json:"uppercase"`
	StripSpaces  bool `json:"strip_spaces"`
	StripDashes  bool `json:"strip_dashes"`
	StripDots    bool `json:"strip_dots"`
	StripSlashes bool `json:"strip_slashes"`
}

// AllEnabled returns Options with every transformation turned on
func AllEnabled() Options {
	return Options{
		Uppercase:    true,
		StripSpaces:  true,
		StripDashes:  true,
		StripDots:    true,
		StripSlashes: true,
	}
}

// Apply canonicalizes a raw serial. Case folding happens first, then the
// enabled character classes are removed. The stripped classes are disjoint so
// their relative order does not matter. Non-ASCII runes pass through unchanged
// apart from case folding. Total over all string input; empty in, empty out.
func Apply(raw string, opts Options) string {
	if raw == "" {
		return ""
	}

	s := raw
	if opts.Uppercase {
		s = strings.ToUpper(s)
	}

	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		switch {
		case opts.StripSpaces && r == ' ':
		case opts.StripDashes && r == '-':
		case opts.StripDots && r == '.':
		case opts.StripSlashes && (r == '/' || r == '\\'):
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ApplyAll normalizes every element of values, preserving order
func ApplyAll(values []string, opts Options) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Apply(v, opts)
	}
	return out
}
