// Package reconcile composes normalization, tokenization, and fuzzy matching
// into a single reconciliation run over expected and found serials.
package reconcile

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/internal/tracing"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalize"
	"github.com/Ramsey-B/clover/pkg/tokenize"
)

// EngineConfig contains configuration for the reconciliation engine
type EngineConfig struct {
	// SuggestionTargetCap bounds how many missing serials receive fuzzy
	// suggestions in one run, keeping large runs responsive without aborting
	// mid-computation. Zero disables the suggestion step.
	SuggestionTargetCap int

	// WorkerCount is the number of parallel suggestion workers
	WorkerCount int

	// MinTokenLength drops shorter document tokens after normalization.
	// Zero leaves length filtering to the extraction pattern.
	MinTokenLength int
}

// DefaultEngineConfig returns default engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SuggestionTargetCap: 200,
		WorkerCount:         4,
	}
}

// Input carries the raw collections and configuration for one run.
// FoundTokens takes precedence when non-nil; otherwise DocumentText is
// tokenized with Pattern.
type Input struct {
	Expected     []string
	FoundTokens  []string
	DocumentText string
	Pattern      string

	Normalize normalize.Options
	Match     matching.Config
}

// Engine implements serial reconciliation between an expected set and the
// tokens found in a document
type Engine struct {
	logger ectologger.Logger
	config EngineConfig
}

// NewEngine creates a new reconciliation engine
func NewEngine(logger ectologger.Logger, config EngineConfig) *Engine {
	return &Engine{
		logger: logger,
		config: config,
	}
}

// Reconcile builds the expected and found sets, splits them into found,
// missing, and extras, and attaches fuzzy suggestions for missing serials.
// The result is fully determined by the input; empty sets on either side are
// a trivial result, not an error.
func (e *Engine) Reconcile(ctx context.Context, input Input) (*models.ReconciliationResult, error) {
	ctx, span := tracing.StartSpan(ctx, "reconcile.Engine.Reconcile")
	defer span.End()

	matcher, err := matching.NewMatcher(input.Match)
	if err != nil {
		return nil, err
	}

	expected := dedupe(normalize.ApplyAll(input.Expected, input.Normalize), 0)

	var (
		tokens       []string
		usedFallback bool
	)
	if input.FoundTokens != nil {
		tokens = input.FoundTokens
	} else {
		extractor := tokenize.NewExtractor(input.Pattern)
		tokens = extractor.Extract(input.DocumentText)
		usedFallback = extractor.UsedFallback()
	}
	foundSet := dedupe(normalize.ApplyAll(tokens, input.Normalize), e.config.MinTokenLength)

	foundIndex := make(map[string]struct{}, len(foundSet))
	for _, token := range foundSet {
		foundIndex[token] = struct{}{}
	}
	expectedIndex := make(map[string]struct{}, len(expected))
	for _, serial := range expected {
		expectedIndex[serial] = struct{}{}
	}

	result := &models.ReconciliationResult{
		RunID:               uuid.New(),
		Found:               make([]string, 0, len(expected)),
		Missing:             make([]string, 0),
		Extras:              make([]string, 0),
		ExpectedCount:       len(expected),
		TokenCount:          len(tokens),
		FoundSetCount:       len(foundSet),
		UsedFallbackPattern: usedFallback,
	}

	for _, serial := range expected {
		if _, ok := foundIndex[serial]; ok {
			result.Found = append(result.Found, serial)
		} else {
			result.Missing = append(result.Missing, serial)
		}
	}
	for _, token := range foundSet {
		if _, ok := expectedIndex[token]; !ok {
			result.Extras = append(result.Extras, token)
		}
	}

	// The suggestion pool is found plus extras: every distinct token that
	// actually occurred in the document. That is exactly the found set, in
	// first-appearance order, so ranking ties stay deterministic.
	result.Suggestions = e.suggest(ctx, result.Missing, foundSet, matcher)

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id":         result.RunID,
		"expected_count": result.ExpectedCount,
		"found_count":    len(result.Found),
		"missing_count":  len(result.Missing),
		"extras_count":   len(result.Extras),
		"used_fallback":  result.UsedFallbackPattern,
	}).Debug("Reconciliation run complete")

	return result, nil
}

// suggest computes fuzzy suggestions for the first SuggestionTargetCap missing
// serials. Each target is independent, so targets are fanned out to a fixed
// pool of workers; results are written back by index so the output order
// matches the missing list regardless of scheduling.
func (e *Engine) suggest(ctx context.Context, missing, pool []string, matcher *matching.Matcher) []models.MissingSuggestion {
	_, span := tracing.StartSpan(ctx, "reconcile.Engine.suggest")
	defer span.End()

	targets := missing
	if e.config.SuggestionTargetCap >= 0 && len(targets) > e.config.SuggestionTargetCap {
		targets = targets[:e.config.SuggestionTargetCap]
	}

	suggestions := make([]models.MissingSuggestion, len(targets))
	if len(targets) == 0 {
		return suggestions
	}

	workerCount := e.config.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(targets) {
		workerCount = len(targets)
	}

	type indexedTarget struct {
		index  int
		serial string
	}

	targetChan := make(chan indexedTarget, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range targetChan {
				suggestions[target.index] = models.MissingSuggestion{
					Serial:      target.serial,
					Suggestions: matcher.Suggest(target.serial, pool),
				}
			}
		}()
	}

	for i, serial := range targets {
		targetChan <- indexedTarget{index: i, serial: serial}
	}
	close(targetChan)
	wg.Wait()

	return suggestions
}

// dedupe drops empty and too-short values and keeps the first appearance of
// each remaining value, preserving order
func dedupe(values []string, minLength int) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if minLength > 0 && utf8.RuneCountInString(value) < minLength {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
