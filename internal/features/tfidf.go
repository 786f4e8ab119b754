// Package features turns loaded records into the fixed-width numeric
// representation consumed by the trainer and frozen into the artifact bundle.
package features

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/endpoint-classifier/internal/types"
)

// DefaultVocabularySize is the per-stream top-N term budget.
const DefaultVocabularySize = 20

// tfidfSmoothing guards the denominators in tf and idf against empty corpora.
const tfidfSmoothing = 1e-10

// TF-IDF feature name prefixes, one per token stream.
const (
	pathTokenPrefix     = "tfidf_token_"
	sampleKeyPathPrefix = "tfidf_path_"
)

// TFIDF derives bounded vocabularies and term weights from the two token
// streams carried by each record, then converts records into per-term
// weighted features. Fit once on the full labeled set; Transform is a pure
// function of the fitted state.
type TFIDF struct {
	TopN int

	pathTokens     types.Vocabulary
	sampleKeyPaths types.Vocabulary
	fitted         bool
}

// NewTFIDF returns a computer selecting up to topN terms per stream.
// topN <= 0 uses DefaultVocabularySize.
func NewTFIDF(topN int) *TFIDF {
	if topN <= 0 {
		topN = DefaultVocabularySize
	}
	return &TFIDF{TopN: topN}
}

// Fit computes both vocabularies and their global idf/score tables from the corpus.
func (t *TFIDF) Fit(records []types.Record) {
	pathDocs := make([][]string, len(records))
	keyDocs := make([][]string, len(records))
	for i, rec := range records {
		pathDocs[i] = lowercaseTokens(rec.PathTokens)
		keyDocs[i] = rec.SampleKeyPaths
	}

	t.pathTokens = fitStream(pathDocs, t.TopN)
	t.sampleKeyPaths = fitStream(keyDocs, t.TopN)
	t.fitted = true
}

// Fitted reports whether Fit has run.
func (t *TFIDF) Fitted() bool { return t.fitted }

// FeatureNames returns the ordered TF-IDF slot names: path-token terms first,
// then sampled key-path terms, each under its stream prefix.
func (t *TFIDF) FeatureNames() []string {
	names := make([]string, 0, len(t.pathTokens.Terms)+len(t.sampleKeyPaths.Terms))
	for _, term := range t.pathTokens.Terms {
		names = append(names, pathTokenPrefix+term)
	}
	for _, term := range t.sampleKeyPaths.Terms {
		names = append(names, sampleKeyPathPrefix+term)
	}
	return names
}

// Transform computes the per-record TF-IDF feature values in FeatureNames order.
// The term frequency is document-local; the idf is the global one from Fit.
func (t *TFIDF) Transform(rec types.Record) []float64 {
	out := make([]float64, 0, len(t.pathTokens.Terms)+len(t.sampleKeyPaths.Terms))
	out = append(out, transformStream(lowercaseTokens(rec.PathTokens), t.pathTokens)...)
	out = append(out, transformStream(rec.SampleKeyPaths, t.sampleKeyPaths)...)
	return out
}

// Params exposes both vocabularies for the artifact bundle.
func (t *TFIDF) Params() *types.TFIDFParams {
	if !t.fitted {
		return nil
	}
	return &types.TFIDFParams{
		PathTokens:     t.pathTokens,
		SampleKeyPaths: t.sampleKeyPaths,
	}
}

func lowercaseTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.ToLower(tok)
	}
	return out
}

// fitStream ranks every term of one stream by its global tf-idf score and
// keeps the top-N. Ties break by the order terms were first encountered.
func fitStream(docs [][]string, topN int) types.Vocabulary {
	termCounts := make(map[string]int)
	docFreq := make(map[string]int)
	firstSeen := make(map[string]int)
	totalTokens := 0
	order := 0

	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if _, ok := firstSeen[term]; !ok {
				firstSeen[term] = order
				order++
			}
			termCounts[term]++
			totalTokens++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	nDocs := float64(len(docs))
	idf := make(map[string]float64, len(termCounts))
	scores := make(map[string]float64, len(termCounts))
	terms := make([]string, 0, len(termCounts))
	for term, count := range termCounts {
		tf := float64(count) / (float64(totalTokens) + tfidfSmoothing)
		idf[term] = math.Log(nDocs / (float64(docFreq[term]) + tfidfSmoothing))
		scores[term] = tf * idf[term]
		terms = append(terms, term)
	}

	sort.Slice(terms, func(i, j int) bool {
		si, sj := scores[terms[i]], scores[terms[j]]
		if si != sj {
			return si > sj
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})
	if len(terms) > topN {
		terms = terms[:topN]
	}

	vocab := types.Vocabulary{
		Terms:  terms,
		IDF:    make(map[string]float64, len(terms)),
		Scores: make(map[string]float64, len(terms)),
	}
	for _, term := range terms {
		vocab.IDF[term] = idf[term]
		vocab.Scores[term] = scores[term]
	}
	return vocab
}

// transformStream maps one record's tokens onto the vocabulary slots.
// An empty token stream yields all zeros.
func transformStream(tokens []string, vocab types.Vocabulary) []float64 {
	out := make([]float64, len(vocab.Terms))
	if len(vocab.Terms) == 0 {
		return out
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens)) + tfidfSmoothing

	for i, term := range vocab.Terms {
		if c := counts[term]; c > 0 {
			out[i] = (float64(c) / total) * vocab.IDF[term]
		}
	}
	return out
}
