// Package verify turns a textual claim into a verdict by fetching related
// news snippets and scoring their similarity against the claim.
package verify

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/truthlens/truthlens/src/api/types"
)

var ErrEmptyClaim = errors.New("no claim provided")

// Fetcher supplies article snippets for a query.
type Fetcher interface {
	FetchSnippets(ctx context.Context, query string) []string
}

// Scorer maps a claim and its snippets to a verdict.
type Scorer interface {
	Score(claim string, articles []string) types.VerificationResult
}

// NewScorer selects a scoring strategy by name. Unknown names fall back to
// the keyword strategy.
func NewScorer(strategy string) Scorer {
	if strategy == "tfidf" {
		return TFIDFScorer{}
	}
	return KeywordScorer{}
}

// Service composes fetching and scoring. Every call re-fetches and
// re-scores; results are never cached.
type Service struct {
	fetcher   Fetcher
	scorer    Scorer
	sanitizer *bluemonday.Policy
}

func New(f Fetcher, s Scorer) *Service {
	return &Service{
		fetcher:   f,
		scorer:    s,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Verify checks a single claim. Empty or whitespace-only claims (including
// claims that are empty once markup is stripped) are an input error, not a
// scored result.
func (s *Service) Verify(ctx context.Context, claim string) (types.VerificationResult, error) {
	claim = strings.TrimSpace(s.sanitizer.Sanitize(claim))
	if claim == "" {
		return types.VerificationResult{}, ErrEmptyClaim
	}
	articles := s.fetcher.FetchSnippets(ctx, claim)
	return s.scorer.Score(claim, articles), nil
}
