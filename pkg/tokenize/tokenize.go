// Package tokenize extracts candidate serial tokens from document text
package tokenize

import "regexp"

// DefaultPattern matches alphanumeric runs (plus - _ / .) of length >= 6.
// It is the fallback when the configured pattern does not compile.
const DefaultPattern = `[A-Za-z0-9\-_/\.]{6,}`

var defaultRegex = regexp.MustCompile(DefaultPattern)

// Extractor pulls serial-shaped tokens out of free text
type Extractor struct {
	regex        *regexp.Regexp
	usedFallback bool
}

// NewExtractor compiles pattern into an Extractor. An invalid pattern is not
// fatal: the extractor substitutes DefaultPattern and reports it through
// UsedFallback so callers can surface a warning. An empty pattern selects the
// default without the warning.
func NewExtractor(pattern string) *Extractor {
	if pattern == "" || pattern == DefaultPattern {
		return &Extractor{regex: defaultRegex}
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return &Extractor{regex: defaultRegex, usedFallback: true}
	}
	return &Extractor{regex: regex}
}

// UsedFallback reports whether the configured pattern failed to compile and
// DefaultPattern was substituted
func (e *Extractor) UsedFallback() bool {
	return e.usedFallback
}

// Extract returns every non-overlapping match in text, left to right.
// Duplicates are retained; deduplication happens after normalization.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}
	return e.regex.FindAllString(text, -1)
}
