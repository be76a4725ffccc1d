package reconcile

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/normalize"
)

func newTestEngine(config EngineConfig) *Engine {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewEngine(logger, config)
}

func TestEngine_Reconcile(t *testing.T) {
	engine := newTestEngine(DefaultEngineConfig())

	input := Input{
		Expected:     []string{"ABC-123", "xyz999"},
		DocumentText: "found: ABC123 and more",
		Pattern:      `[A-Za-z0-9]{6,}`,
		Normalize: normalize.Options{
			Uppercase:   true,
			StripDashes: true,
		},
		Match: matching.DefaultConfig(),
	}

	result, err := engine.Reconcile(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"ABC123"}, result.Found)
	assert.Equal(t, []string{"XYZ999"}, result.Missing)
	assert.Empty(t, result.Extras)
	assert.Equal(t, 2, result.ExpectedCount)
	assert.False(t, result.UsedFallbackPattern)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "XYZ999", result.Suggestions[0].Serial)
	assert.Empty(t, result.Suggestions[0].Suggestions)
}

func TestEngine_Reconcile_Suggestions(t *testing.T) {
	engine := newTestEngine(DefaultEngineConfig())

	input := Input{
		Expected:     []string{"ABC123"},
		DocumentText: "page 1 lists ABD123 and ZZZZZZ",
		Match:        matching.DefaultConfig(),
	}

	result, err := engine.Reconcile(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"ABC123"}, result.Missing)
	assert.ElementsMatch(t, []string{"ABD123", "ZZZZZZ"}, result.Extras)

	require.Len(t, result.Suggestions, 1)
	suggestion := result.Suggestions[0]
	assert.Equal(t, "ABC123", suggestion.Serial)
	require.Len(t, suggestion.Suggestions, 1)
	assert.Equal(t, "ABD123", suggestion.Suggestions[0].Candidate)
	assert.Equal(t, 1, suggestion.Suggestions[0].Distance)
}

func TestEngine_Reconcile_EmptyDocument(t *testing.T) {
	engine := newTestEngine(DefaultEngineConfig())

	result, err := engine.Reconcile(context.Background(), Input{
		Expected: []string{"ABC123", "XYZ999"},
		Match:    matching.DefaultConfig(),
	})
	require.NoError(t, err)

	assert.Empty(t, result.Found)
	assert.Equal(t, []string{"ABC123", "XYZ999"}, result.Missing)
	assert.Empty(t, result.Extras)
	assert.Zero(t, result.FoundSetCount)
}

func TestEngine_Reconcile_PreTokenized(t *testing.T) {
	engine := newTestEngine(DefaultEngineConfig())

	result, err := engine.Reconcile(context.Background(), Input{
		Expected:    []string{"abc123"},
		FoundTokens: []string{"abc123", "abc123", "extra9"},
		Normalize:   normalize.Options{Uppercase: true},
		Match:       matching.DefaultConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ABC123"}, result.Found)
	assert.Equal(t, []string{"EXTRA9"}, result.Extras)
	assert.Equal(t, 3, result.TokenCount)
	assert.Equal(t, 2, result.FoundSetCount)
	assert.False(t, result.UsedFallbackPattern)
}

func TestEngine_Reconcile_FallbackPattern(t *testing.T) {
	engine := newTestEngine(DefaultEngineConfig())

	result, err := engine.Reconcile(context.Background(), Input{
		Expected:     []string{"ABC123"},
		DocumentText: "serial ABC123",
		Pattern:      "(unclosed",
		Match:        matching.DefaultConfig(),
	})
	require.NoError(t, err)

	assert.True(t, result.UsedFallbackPattern)
	assert.Equal(t, []string{"ABC123"}, result.Found)
}

func TestEngine_Reconcile_InvalidMatchConfig(t *testing.T) {
	engine := newTestEngine(DefaultEngineConfig())

	_, err := engine.Reconcile(context.Background(), Input{
		Expected: []string{"ABC123"},
		Match:    matching.Config{MaxDistance: -1, TopK: 3},
	})
	assert.Error(t, err)
}

func TestEngine_Reconcile_SuggestionCap(t *testing.T) {
	config := DefaultEngineConfig()
	config.SuggestionTargetCap = 2
	engine := newTestEngine(config)

	result, err := engine.Reconcile(context.Background(), Input{
		Expected: []string{"AAAAA1", "BBBBB2", "CCCCC3", "DDDDD4"},
		Match:    matching.DefaultConfig(),
	})
	require.NoError(t, err)

	assert.Len(t, result.Missing, 4)
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, "AAAAA1", result.Suggestions[0].Serial)
	assert.Equal(t, "BBBBB2", result.Suggestions[1].Serial)
}

func TestEngine_Reconcile_Deterministic(t *testing.T) {
	engine := newTestEngine(DefaultEngineConfig())

	input := Input{
		Expected:     []string{"SER0001", "SER0002", "SER0003", "SER0004"},
		DocumentText: "SER0011 SER0012 SER0013 SER0014 SER0001",
		Match:        matching.Config{MaxDistance: 2, TopK: 3},
	}

	first, err := engine.Reconcile(context.Background(), input)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		next, err := engine.Reconcile(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, first.Found, next.Found)
		assert.Equal(t, first.Missing, next.Missing)
		assert.Equal(t, first.Extras, next.Extras)
		assert.Equal(t, first.Suggestions, next.Suggestions)
	}
}

func TestEngine_Reconcile_MinTokenLength(t *testing.T) {
	config := DefaultEngineConfig()
	config.MinTokenLength = 6
	engine := newTestEngine(config)

	result, err := engine.Reconcile(context.Background(), Input{
		Expected:    []string{"ABC123"},
		FoundTokens: []string{"ABC", "ABC123"},
		Match:       matching.DefaultConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ABC123"}, result.Found)
	assert.Equal(t, 1, result.FoundSetCount)
}
