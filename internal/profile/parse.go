package profile

import "strings"

// ParseFAQText parses raw FAQ text in the "Q: ... A: ..." line format into
// question/answer pairs. Lines that do not carry both markers are skipped.
func ParseFAQText(raw string) []QA {
	var pairs []QA
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		qPos := strings.Index(line, "Q:")
		aPos := strings.Index(line, "A:")
		if qPos < 0 || aPos < 0 || aPos < qPos {
			continue
		}
		q := strings.TrimSpace(line[qPos+2 : aPos])
		a := strings.TrimSpace(line[aPos+2:])
		if q == "" || a == "" {
			continue
		}
		pairs = append(pairs, QA{Question: q, Answer: a})
	}
	return pairs
}
