package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFAQText(t *testing.T) {
	raw := `
Q: What are your hours? A: We're open 9-5 Monday to Friday
Q: Where are you located? A: 123 Main St
just some chatter without markers
Q: missing answer marker
A: missing question marker
Q:  A: empty question is skipped
`
	pairs := ParseFAQText(raw)
	require.Len(t, pairs, 2)
	assert.Equal(t, "What are your hours?", pairs[0].Question)
	assert.Equal(t, "We're open 9-5 Monday to Friday", pairs[0].Answer)
	assert.Equal(t, "Where are you located?", pairs[1].Question)
}

func TestParseFAQTextEmpty(t *testing.T) {
	assert.Empty(t, ParseFAQText(""))
	assert.Empty(t, ParseFAQText("no markers here at all"))
}

func TestNewMergesIndustrySamples(t *testing.T) {
	custom := []QA{{Question: "Do you ship overseas?", Answer: "Yes, worldwide."}}
	p := New("Acme", "A shop.", "retail", custom)
	require.Len(t, p.Faqs, 3)
	// custom pairs stay ahead of the starter pack
	assert.Equal(t, "Do you ship overseas?", p.Faqs[0].Question)
	assert.Equal(t, "What are your store hours?", p.Faqs[1].Question)
}

func TestNewUnknownIndustry(t *testing.T) {
	p := New("Acme", "", "astrology", []QA{{Question: "q", Answer: "a"}})
	assert.Len(t, p.Faqs, 1)
}

func TestIndustrySamples(t *testing.T) {
	for _, industry := range Industries() {
		assert.NotEmpty(t, IndustrySamples(industry), industry)
	}
	assert.Nil(t, IndustrySamples("unknown"))
}
