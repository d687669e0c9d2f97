package profile

import (
	"faqbot/internal/domain"
)

// QA is one question/answer pair before it is embedded and indexed.
type QA struct {
	Question string   `yaml:"question"`
	Answer   string   `yaml:"answer"`
	Tags     []string `yaml:"tags,omitempty"`
}

// New assembles a BusinessProfile from custom FAQ pairs, appending the
// starter pack for the industry when one exists. Custom pairs keep their
// position ahead of the samples, which matters for tie-breaking.
func New(name, description, industry string, custom []QA) *domain.BusinessProfile {
	all := make([]QA, 0, len(custom))
	all = append(all, custom...)
	all = append(all, IndustrySamples(industry)...)
	faqs := make([]domain.FaqEntry, 0, len(all))
	for _, qa := range all {
		faqs = append(faqs, domain.FaqEntry{Question: qa.Question, Answer: qa.Answer, Tags: qa.Tags})
	}
	return &domain.BusinessProfile{Name: name, Description: description, Faqs: faqs}
}
