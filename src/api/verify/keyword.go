package verify

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/truthlens/truthlens/src/api/types"
)

// Shown when scoring had to run without any article data.
const (
	NoDataReason   = "Limited data available for verification. Please try with a more specific statement."
	NoDataSource   = "Data source temporarily unavailable"
	minTokenLength = 3
)

var wordRe = regexp.MustCompile(`\w+`)

// KeywordScorer rates a claim by the share of its significant words that
// appear as substrings of the combined article text.
type KeywordScorer struct{}

func (KeywordScorer) Score(claim string, articles []string) types.VerificationResult {
	if len(articles) == 0 {
		return types.VerificationResult{
			Statement:    claim,
			Verification: types.VerdictUncertain,
			Confidence:   50.0,
			Reason:       NoDataReason,
			Sources:      []string{NoDataSource},
		}
	}

	articleText := strings.ToLower(strings.Join(articles, " "))
	lower := strings.ToLower(claim)

	var candidates []string
	for _, w := range wordRe.FindAllString(lower, -1) {
		if len(w) > minTokenLength {
			candidates = append(candidates, w)
		}
	}
	// Short claims ("the sky", "it is") would leave nothing to match on;
	// fall back to the raw words rather than divide by zero.
	if len(candidates) == 0 {
		candidates = strings.Fields(lower)
	}

	matched := 0
	for _, w := range candidates {
		if strings.Contains(articleText, w) {
			matched++
		}
	}
	var ratio float64
	if len(candidates) > 0 {
		ratio = float64(matched) / float64(len(candidates))
	}

	var verdict string
	var confidence float64
	switch {
	case ratio > 0.3:
		verdict, confidence = types.VerdictLikelyTrue, math.Min(ratio*100, 85)
	case ratio > 0.1:
		verdict, confidence = types.VerdictUncertain, math.Min(ratio*80, 60)
	default:
		verdict, confidence = types.VerdictLikelyFalse, math.Min((1-ratio)*70, 65)
	}

	return types.VerificationResult{
		Statement:    claim,
		Verification: verdict,
		Confidence:   round2(confidence),
		Reason: fmt.Sprintf(
			"Analysis of %d articles shows %s correlation with available sources. Based on basic text matching.",
			len(articles), strings.ToLower(verdict)),
		Sources:          articles,
		ArticlesAnalyzed: len(articles),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
