package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"faqbot/internal/encoder"
)

// Encoder is a TF-IDF vectorizer fitted on the FAQ question corpus.
// Vectors are L2-normalized, so the dot product of two encodings is their
// cosine similarity.
type Encoder struct {
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	fitted       bool
	maxInputLen  int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// New creates an unfitted TF-IDF encoder with the given input length limit.
func New(maxInputLen int) *Encoder {
	return &Encoder{
		maxInputLen:  maxInputLen,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Name returns the identifier of this encoder implementation.
func (e *Encoder) Name() string { return "tfidf" }

// Fit builds the vocabulary and IDF values from the provided corpus.
// Refitting replaces the vector space entirely, so any index built against
// the previous fit must be rebuilt.
func (e *Encoder) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return &encoder.EncodingError{Reason: "empty corpus for TF-IDF fit"}
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return &encoder.EncodingError{Reason: "no tokens found in corpus"}
	}
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.fitted = true
	return nil
}

// Dimension returns the dimensionality of the produced vectors.
func (e *Encoder) Dimension() int { return e.dimension }

// Encode computes the TF-IDF vector for normalized text. Text with no known
// tokens encodes to the zero vector, which scores 0 against every entry.
func (e *Encoder) Encode(text string) ([]float64, error) {
	if err := encoder.ValidateInput(text, e.maxInputLen); err != nil {
		return nil, err
	}
	if !e.fitted {
		return nil, &encoder.EncodingError{Reason: "tfidf encoder not fitted"}
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * e.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func (e *Encoder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
