package profile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"faqbot/internal/domain"
)

// ExportVersion is written into every portable record.
const ExportVersion = 1

// SchemaError reports a portable record that fails validation. No partial
// profile is ever produced from an invalid record.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("profile schema: %s: %s", e.Field, e.Reason)
}

// Metadata describes when and by which format version a record was written.
type Metadata struct {
	CreatedAt time.Time `yaml:"created_at"`
	Version   int       `yaml:"version"`
}

// Record is the portable FAQ configuration format. It carries no embeddings;
// those are recomputed from question text on import because the encoder is
// not guaranteed stable across exports. Unknown fields in a record are
// ignored on import.
type Record struct {
	BusinessName string   `yaml:"business_name"`
	Description  string   `yaml:"description"`
	Faqs         []QA     `yaml:"faqs"`
	Metadata     Metadata `yaml:"metadata"`
}

// Export serializes a profile into the portable YAML record.
func Export(p *domain.BusinessProfile) ([]byte, error) {
	if err := validate(p.Name, toQAs(p.Faqs)); err != nil {
		return nil, err
	}
	rec := Record{
		BusinessName: p.Name,
		Description:  p.Description,
		Faqs:         toQAs(p.Faqs),
		Metadata:     Metadata{CreatedAt: time.Now().UTC(), Version: ExportVersion},
	}
	return yaml.Marshal(&rec)
}

// Import parses a portable record back into a profile. Embeddings and entry
// ids are assigned later when the profile is trained.
func Import(data []byte) (*domain.BusinessProfile, error) {
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, &SchemaError{Field: "record", Reason: err.Error()}
	}
	if err := validate(rec.BusinessName, rec.Faqs); err != nil {
		return nil, err
	}
	faqs := make([]domain.FaqEntry, 0, len(rec.Faqs))
	for _, qa := range rec.Faqs {
		faqs = append(faqs, domain.FaqEntry{Question: qa.Question, Answer: qa.Answer, Tags: qa.Tags})
	}
	return &domain.BusinessProfile{Name: rec.BusinessName, Description: rec.Description, Faqs: faqs}, nil
}

// ExportFile writes the portable record to disk.
func ExportFile(path string, p *domain.BusinessProfile) error {
	data, err := Export(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportFile reads a portable record from disk.
func ImportFile(path string) (*domain.BusinessProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Import(data)
}

func toQAs(faqs []domain.FaqEntry) []QA {
	out := make([]QA, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, QA{Question: f.Question, Answer: f.Answer, Tags: f.Tags})
	}
	return out
}

func validate(name string, faqs []QA) error {
	if name == "" {
		return &SchemaError{Field: "business_name", Reason: "required"}
	}
	if len(faqs) == 0 {
		return &SchemaError{Field: "faqs", Reason: "at least one FAQ required"}
	}
	for i, qa := range faqs {
		if qa.Question == "" {
			return &SchemaError{Field: fmt.Sprintf("faqs[%d].question", i), Reason: "required"}
		}
		if qa.Answer == "" {
			return &SchemaError{Field: fmt.Sprintf("faqs[%d].answer", i), Reason: "required"}
		}
	}
	return nil
}
