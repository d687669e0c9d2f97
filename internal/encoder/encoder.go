package encoder

import (
	"fmt"
	"strings"
)

// Encoder converts normalized text into a fixed-dimension vector.
// Implementations may require a preparation phase over the question corpus.
type Encoder interface {
	Name() string
	Fit(corpus []string) error
	Dimension() int
	Encode(text string) ([]float64, error)
}

// EncodingError reports input that cannot be encoded: empty after
// normalization, over the configured length limit, or a backend failure.
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encoding: %s: %v", e.Reason, e.Err)
	}
	return "encoding: " + e.Reason
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Normalize trims, lowercases and collapses whitespace. Every caller must
// normalize before handing text to an Encoder.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ValidateInput checks normalized text against the encoder input contract.
func ValidateInput(normalized string, maxLen int) error {
	if normalized == "" {
		return &EncodingError{Reason: "empty input after normalization"}
	}
	if maxLen > 0 && len(normalized) > maxLen {
		return &EncodingError{Reason: fmt.Sprintf("input exceeds %d characters", maxLen)}
	}
	return nil
}
