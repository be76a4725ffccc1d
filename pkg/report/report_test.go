package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func testResult() *models.ReconciliationResult {
	return &models.ReconciliationResult{
		Found:   []string{"ABC123"},
		Missing: []string{"XYZ999", "QRS000"},
		Extras:  []string{"ZZZZZZ"},
		Suggestions: []models.MissingSuggestion{
			{
				Serial: "XYZ999",
				Suggestions: []models.Suggestion{
					{Candidate: "XYZ998", Distance: 1},
					{Candidate: "XYZ988", Distance: 2},
				},
			},
			{Serial: "QRS000"},
		},
	}
}

func TestWrite_Serials(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testResult(), SectionMissing))
	assert.Equal(t, "serial\nXYZ999\nQRS000\n", buf.String())
}

func TestWrite_Suggestions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testResult(), SectionSuggestions))

	expected := "serial_missing,candidate,distance\n" +
		"XYZ999,XYZ998,1\n" +
		"XYZ999,XYZ988,2\n" +
		"QRS000,,\n"
	assert.Equal(t, expected, buf.String())
}

func TestWrite_EmptySection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &models.ReconciliationResult{}, SectionFound))
	assert.Equal(t, "serial\n", buf.String())
}

func TestWrite_UnknownSection(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, testResult(), Section("bogus")))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "reconciliation_extras.csv", Filename(SectionExtras))
}
