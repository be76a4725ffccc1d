package matching

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/Ramsey-B/clover/pkg/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config bounds the fuzzy suggestion search
type Config struct {
	MaxDistance int `json:"max_distance" validate:"gte=0"` // largest edit distance considered a near match
	TopK        int `json:"top_k" validate:"gte=1"`        // maximum suggestions returned per target
}

// DefaultConfig returns the suggestion bounds used when the caller does not
// override them
func DefaultConfig() Config {
	return Config{
		MaxDistance: 1,
		TopK:        3,
	}
}

// Matcher ranks candidate serials by edit distance to a target
type Matcher struct {
	config Config
}

// NewMatcher validates config and creates a Matcher. Structurally invalid
// bounds (TopK < 1, negative MaxDistance) are a hard failure; every string
// input to Suggest is valid.
func NewMatcher(config Config) (*Matcher, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid match config: %w", err)
	}
	return &Matcher{config: config}, nil
}

// Suggest returns up to TopK candidates within MaxDistance of target, sorted
// ascending by distance. Ties keep the candidate iteration order (stable
// sort), so a deterministic pool yields a deterministic suggestion list.
func (m *Matcher) Suggest(target string, candidates []string) []models.Suggestion {
	suggestions := make([]models.Suggestion, 0)
	for _, candidate := range candidates {
		distance := Distance(target, candidate)
		if distance <= m.config.MaxDistance {
			suggestions = append(suggestions, models.Suggestion{
				Candidate: candidate,
				Distance:  distance,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Distance < suggestions[j].Distance
	})

	if len(suggestions) > m.config.TopK {
		suggestions = suggestions[:m.config.TopK]
	}
	return suggestions
}
