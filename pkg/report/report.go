// Package report renders reconciliation results as downloadable CSV sections.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Ramsey-B/clover/pkg/models"
)

// Section selects which part of a reconciliation result to export
type Section string

const (
	SectionFound       Section = "found"
	SectionMissing     Section = "missing"
	SectionExtras      Section = "extras"
	SectionSuggestions Section = "suggestions"
)

// Filename returns the download filename for a section
func Filename(section Section) string {
	return fmt.Sprintf("reconciliation_%s.csv", section)
}

// Write renders the requested section of result to w as CSV
func Write(w io.Writer, result *models.ReconciliationResult, section Section) error {
	switch section {
	case SectionFound:
		return writeSerials(w, result.Found)
	case SectionMissing:
		return writeSerials(w, result.Missing)
	case SectionExtras:
		return writeSerials(w, result.Extras)
	case SectionSuggestions:
		return writeSuggestions(w, result.Suggestions)
	default:
		return fmt.Errorf("unknown report section %q", section)
	}
}

func writeSerials(w io.Writer, serials []string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"serial"}); err != nil {
		return err
	}
	for _, serial := range serials {
		if err := writer.Write([]string{serial}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeSuggestions writes one row per candidate. A missing serial with no
// candidates still gets a row so it is visible in the export.
func writeSuggestions(w io.Writer, suggestions []models.MissingSuggestion) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"serial_missing", "candidate", "distance"}); err != nil {
		return err
	}
	for _, suggestion := range suggestions {
		if len(suggestion.Suggestions) == 0 {
			if err := writer.Write([]string{suggestion.Serial, "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, candidate := range suggestion.Suggestions {
			row := []string{suggestion.Serial, candidate.Candidate, strconv.Itoa(candidate.Distance)}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
