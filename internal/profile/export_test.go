package profile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/domain"
)

func sampleProfile() *domain.BusinessProfile {
	return &domain.BusinessProfile{
		Name:        "Acme Hardware",
		Description: "Neighborhood hardware store.",
		Faqs: []domain.FaqEntry{
			{Question: "What are your hours?", Answer: "9-5 Mon-Fri", Tags: []string{"hours"}},
			{Question: "Where are you located?", Answer: "123 Main St"},
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	p := sampleProfile()
	data, err := Export(p)
	require.NoError(t, err)

	got, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Description, got.Description)
	require.Len(t, got.Faqs, len(p.Faqs))
	for i := range p.Faqs {
		assert.Equal(t, p.Faqs[i].Question, got.Faqs[i].Question)
		assert.Equal(t, p.Faqs[i].Answer, got.Faqs[i].Answer)
		assert.Equal(t, p.Faqs[i].Tags, got.Faqs[i].Tags)
	}
}

func TestExportOmitsEmbeddings(t *testing.T) {
	p := sampleProfile()
	p.Faqs[0].Embedding = []float64{0.1, 0.2}
	data, err := Export(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "embedding")
	assert.Contains(t, string(data), "business_name: Acme Hardware")
	assert.Contains(t, string(data), "version: 1")
}

func TestImportIgnoresUnknownFields(t *testing.T) {
	data := []byte(`
business_name: Acme
description: shop
future_field: whatever
faqs:
  - question: q1
    answer: a1
    relevance: 0.9
metadata:
  created_at: 2025-01-02T15:04:05Z
  version: 7
  exporter: faqtool
`)
	p, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Name)
	require.Len(t, p.Faqs, 1)
}

func TestImportSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", "faqs:\n  - question: q\n    answer: a\n"},
		{"no faqs", "business_name: Acme\n"},
		{"empty question", "business_name: Acme\nfaqs:\n  - question: \"\"\n    answer: a\n"},
		{"empty answer", "business_name: Acme\nfaqs:\n  - question: q\n    answer: \"\"\n"},
		{"not yaml", "::: nope {{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.data))
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "want SchemaError, got %v", err)
		})
	}
}

func TestExportInvalidProfile(t *testing.T) {
	_, err := Export(&domain.BusinessProfile{Name: ""})
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, ExportFile(path, sampleProfile()))
	got, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme Hardware", got.Name)
	assert.Len(t, got.Faqs, 2)
}
