package summary

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
	wordRe     = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// Describe condenses a business description to its maxSentences most
// representative sentences, ranked by token frequency and kept in original
// order. Short descriptions come back unchanged.
func Describe(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 2
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) <= maxSentences {
		return strings.TrimSpace(text)
	}
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range tokens(sent) {
			freq[tok]++
		}
	}
	type scored struct {
		idx   int
		score float64
	}
	all := make([]scored, len(sentences))
	for i, sent := range sentences {
		toks := tokens(sent)
		s := 0.0
		for _, tok := range toks {
			s += freq[tok]
		}
		if len(toks) > 0 {
			// normalize by length so long sentences don't dominate
			s /= math.Sqrt(float64(len(toks)))
		}
		all[i] = scored{idx: i, score: s}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	picked := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		picked[i] = all[i].idx
	}
	sort.Ints(picked)
	out := make([]string, 0, len(picked))
	for _, idx := range picked {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " ")
}

func tokens(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}
