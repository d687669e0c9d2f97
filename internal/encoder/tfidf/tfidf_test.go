package tfidf

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/encoder"
)

var corpus = []string{
	"what are your hours?",
	"where are you located?",
	"do you offer returns?",
}

func TestFitAndDimension(t *testing.T) {
	e := New(0)
	require.NoError(t, e.Fit(corpus))
	assert.Greater(t, e.Dimension(), 0)
}

func TestFitEmptyCorpus(t *testing.T) {
	e := New(0)
	err := e.Fit(nil)
	var encErr *encoder.EncodingError
	require.True(t, errors.As(err, &encErr))
}

func TestEncodeDeterministic(t *testing.T) {
	e := New(0)
	require.NoError(t, e.Fit(corpus))
	a, err := e.Encode("what are your hours?")
	require.NoError(t, err)
	b, err := e.Encode("what are your hours?")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, e.Dimension())
}

func TestEncodeUnitNorm(t *testing.T) {
	e := New(0)
	require.NoError(t, e.Fit(corpus))
	v, err := e.Encode("where are you located?")
	require.NoError(t, err)
	norm := 0.0
	for _, f := range v {
		norm += f * f
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestEncodeSelfSimilarity(t *testing.T) {
	e := New(0)
	require.NoError(t, e.Fit(corpus))
	v, err := e.Encode("do you offer returns?")
	require.NoError(t, err)
	w, err := e.Encode("do you offer returns?")
	require.NoError(t, err)
	dot := 0.0
	for i := range v {
		dot += v[i] * w[i]
	}
	assert.InDelta(t, 1.0, dot, 1e-9)
}

func TestEncodeUnknownTokensZeroVector(t *testing.T) {
	e := New(0)
	require.NoError(t, e.Fit(corpus))
	v, err := e.Encode("zzz qqq www")
	require.NoError(t, err)
	for _, f := range v {
		assert.Zero(t, f)
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	e := New(10)
	require.NoError(t, e.Fit(corpus))
	var encErr *encoder.EncodingError

	_, err := e.Encode("")
	require.True(t, errors.As(err, &encErr))

	_, err = e.Encode("this input exceeds the ten character limit")
	require.True(t, errors.As(err, &encErr))
}

func TestEncodeUnfitted(t *testing.T) {
	e := New(0)
	_, err := e.Encode("anything")
	var encErr *encoder.EncodingError
	require.True(t, errors.As(err, &encErr))
}

func TestIDFWeighting(t *testing.T) {
	// "hours" appears in one doc, "you" in two; rarer terms weigh more
	e := New(0)
	require.NoError(t, e.Fit(corpus))
	rare := e.idf[e.vocabulary["hours"]]
	common := e.idf[e.vocabulary["you"]]
	assert.Greater(t, rare, common)
	assert.False(t, math.IsNaN(rare))
}
