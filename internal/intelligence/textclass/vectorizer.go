package textclass

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern selects word tokens of two or more characters, mirroring the
// tokenization the model was tuned against.  Single-character tokens carry
// no signal for this corpus.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// tokenize normalizes text to NFC, lowercases it, and splits it into word
// tokens.  Tokenization is the single point of truth shared by fitting and
// transforming; changing it invalidates any trained model.
func tokenize(text string) []string {
	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	return tokenPattern.FindAllString(text, -1)
}

// Vectorizer maps documents to L2-normalized TF-IDF vectors over a
// vocabulary fixed at fit time.  The vocabulary is sorted so that feature
// indices, and therefore the trained model, are identical across runs on the
// same corpus.  A fitted Vectorizer is read-only and safe for concurrent use.
type Vectorizer struct {
	vocab map[string]int
	terms []string
	idf   []float64
}

// NewVectorizer returns an unfitted Vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Fit learns the vocabulary and inverse document frequencies from docs.
// IDF uses the smoothed form ln((1+n)/(1+df)) + 1, which keeps every weight
// strictly positive and tolerates terms present in all documents.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("textclass: cannot fit vectorizer on empty corpus")
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	if len(df) == 0 {
		return fmt.Errorf("textclass: corpus produced no tokens")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.vocab = vocab
	v.terms = terms
	v.idf = idf
	return nil
}

// Fitted reports whether the vocabulary has been learned.
func (v *Vectorizer) Fitted() bool { return v.vocab != nil }

// VocabularySize returns the number of features.
func (v *Vectorizer) VocabularySize() int { return len(v.terms) }

// Transform converts one document into its L2-normalized TF-IDF vector.
// Out-of-vocabulary tokens are ignored; a document with no known tokens maps
// to the zero vector.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.terms))

	for _, tok := range tokenize(doc) {
		if idx, ok := v.vocab[tok]; ok {
			vec[idx]++
		}
	}

	var sumSquares float64
	for i := range vec {
		vec[i] *= v.idf[i]
		sumSquares += vec[i] * vec[i]
	}

	if sumSquares > 0 {
		scale := 1 / math.Sqrt(sumSquares)
		for i := range vec {
			vec[i] *= scale
		}
	}

	return vec
}
