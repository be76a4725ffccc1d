// Package models contains the data types shared across the reconciliation pipeline
package models

import "github.com/google/uuid"

// Suggestion pairs a candidate token with its edit distance from a missing serial
type Suggestion struct {
	Candidate string `json:"candidate"`
	Distance  int    `json:"distance"`
}

// MissingSuggestion lists the ranked near matches for one missing serial
type MissingSuggestion struct {
	Serial      string       `json:"serial_missing"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ReconciliationResult is the outcome of a single reconciliation run. It is
// fully determined by the two input collections and the configuration; runs
// share no state.
type ReconciliationResult struct {
	RunID uuid.UUID `json:"run_id"`

	// Found holds the expected serials confirmed present in the document,
	// Missing the expected serials absent from it, and Extras the document
	// tokens that were not expected. All three are normalized and ordered by
	// first appearance in their source collection.
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
	Extras  []string `json:"extras"`

	Suggestions []MissingSuggestion `json:"suggestions"`

	ExpectedCount int `json:"expected_count"` // distinct normalized expected serials
	TokenCount    int `json:"token_count"`    // raw document tokens before dedup
	FoundSetCount int `json:"found_set_count"`

	// UsedFallbackPattern is set when the supplied extraction pattern did not
	// compile and the built-in default was used instead.
	UsedFallbackPattern bool `json:"used_fallback_pattern"`
}
