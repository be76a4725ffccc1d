package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_DefaultPattern(t *testing.T) {
	extractor := NewExtractor("")
	assert.False(t, extractor.UsedFallback())

	tokens := extractor.Extract("serials ABC123 and XYZ-999/01 but not ab1")
	assert.Equal(t, []string{"serials", "ABC123", "XYZ-999/01"}, tokens)
}

func TestExtractor_CustomPattern(t *testing.T) {
	extractor := NewExtractor(`[0-9]{4}`)
	assert.False(t, extractor.UsedFallback())

	tokens := extractor.Extract("codes 1234 and 5678")
	assert.Equal(t, []string{"1234", "5678"}, tokens)
}

func TestExtractor_InvalidPatternFallsBack(t *testing.T) {
	extractor := NewExtractor("(unclosed")
	assert.True(t, extractor.UsedFallback())

	tokens := extractor.Extract("serial ABC123 here")
	assert.Equal(t, []string{"serial", "ABC123"}, tokens)
}

func TestExtractor_PreservesOrderAndDuplicates(t *testing.T) {
	extractor := NewExtractor("")

	tokens := extractor.Extract("ABC123 XYZ999 ABC123")
	assert.Equal(t, []string{"ABC123", "XYZ999", "ABC123"}, tokens)
}

func TestExtractor_EmptyText(t *testing.T) {
	extractor := NewExtractor("")
	assert.Nil(t, extractor.Extract(""))
	assert.Nil(t, extractor.Extract("no long tkn"))
}
