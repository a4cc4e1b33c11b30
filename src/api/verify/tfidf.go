package verify

import (
	"fmt"
	"math"
	"strings"

	"github.com/bbalet/stopwords"

	"github.com/truthlens/truthlens/src/api/types"
)

// TFIDFScorer rates a claim by cosine similarity between tf-idf vectors of
// the claim and each article, with English stop-words removed. Uses
// smoothed idf and L2-normalised vectors.
type TFIDFScorer struct{}

func (TFIDFScorer) Score(claim string, articles []string) types.VerificationResult {
	if len(articles) == 0 {
		return types.VerificationResult{
			Statement:    claim,
			Verification: types.VerdictInconclusive,
			Confidence:   0,
		}
	}

	docs := make([][]string, 0, len(articles)+1)
	docs = append(docs, contentTokens(claim))
	for _, a := range articles {
		docs = append(docs, contentTokens(a))
	}
	vectors := tfidfVectors(docs)

	var sum, max float64
	for i := 1; i < len(vectors); i++ {
		sim := dot(vectors[0], vectors[i])
		sum += sim
		if sim > max {
			max = sim
		}
	}
	avg := sum / float64(len(articles))

	var verdict string
	var confidence float64
	switch {
	case max > 0.4:
		verdict, confidence = types.VerdictLikelyTrue, max*100
	case max > 0.2:
		verdict, confidence = types.VerdictUncertain, max*80
	default:
		verdict, confidence = types.VerdictLikelyFalse, (1-avg)*40
	}

	return types.VerificationResult{
		Statement:    claim,
		Verification: verdict,
		Confidence:   round2(confidence),
		Reason: fmt.Sprintf(
			"Analysis of %d articles shows %s correlation with available sources. Based on TF-IDF cosine similarity.",
			len(articles), strings.ToLower(verdict)),
		Sources:          articles,
		ArticlesAnalyzed: len(articles),
	}
}

// contentTokens lower-cases text and drops English stop-words before
// splitting into word tokens.
func contentTokens(text string) []string {
	cleaned := stopwords.CleanString(strings.ToLower(text), "en", false)
	return wordRe.FindAllString(cleaned, -1)
}

// tfidfVectors builds one L2-normalised tf-idf vector per document over the
// shared vocabulary of all documents.
func tfidfVectors(docs [][]string) [][]float64 {
	vocab := make(map[string]int)
	for _, doc := range docs {
		for _, t := range doc {
			if _, ok := vocab[t]; !ok {
				vocab[t] = len(vocab)
			}
		}
	}

	df := make([]float64, len(vocab))
	counts := make([]map[int]float64, len(docs))
	for i, doc := range docs {
		counts[i] = make(map[int]float64)
		for _, t := range doc {
			counts[i][vocab[t]]++
		}
		for idx := range counts[i] {
			df[idx]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i := range idf {
		idf[i] = math.Log((1+n)/(1+df[i])) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec := make([]float64, len(vocab))
		var norm float64
		for idx, tf := range counts[i] {
			vec[idx] = tf * idf[idx]
			norm += vec[idx] * vec[idx]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

// dot of two L2-normalised vectors is their cosine similarity.
func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
