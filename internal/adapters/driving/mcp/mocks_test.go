package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driving"
)

// mockQueryService is a hand-rolled QueryService double. List operations
// return the canned summaries as-is; calls records which operations ran so
// tests can assert routing.
type mockQueryService struct {
	summaries   []domain.DocumentSummary
	document    *domain.Document
	status      domain.CatalogStatus
	err         error
	calls       []string
	invalidated int
}

var _ driving.QueryService = (*mockQueryService)(nil)

func (m *mockQueryService) Summaries(context.Context) ([]domain.DocumentSummary, error) {
	m.calls = append(m.calls, "Summaries")
	return m.summaries, m.err
}

func (m *mockQueryService) Get(_ context.Context, id string) (*domain.Document, error) {
	m.calls = append(m.calls, "Get:"+id)
	if m.err != nil {
		return nil, m.err
	}
	return m.document, nil
}

func (m *mockQueryService) GetByPath(_ context.Context, path string) (*domain.Document, error) {
	m.calls = append(m.calls, "GetByPath:"+path)
	if m.err != nil {
		return nil, m.err
	}
	return m.document, nil
}

func (m *mockQueryService) ListByType(_ context.Context, docType domain.DocType) ([]domain.DocumentSummary, error) {
	m.calls = append(m.calls, "ListByType:"+docType.String())
	return m.summaries, m.err
}

func (m *mockQueryService) ListByCategory(_ context.Context, category string) ([]domain.DocumentSummary, error) {
	m.calls = append(m.calls, "ListByCategory:"+category)
	return m.summaries, m.err
}

func (m *mockQueryService) ListByLanguage(_ context.Context, language string) ([]domain.DocumentSummary, error) {
	m.calls = append(m.calls, "ListByLanguage:"+language)
	return m.summaries, m.err
}

func (m *mockQueryService) Search(_ context.Context, term string) ([]domain.DocumentSummary, error) {
	m.calls = append(m.calls, "Search:"+term)
	return m.summaries, m.err
}

func (m *mockQueryService) ADRsByStatus(_ context.Context, status domain.Status) ([]domain.DocumentSummary, error) {
	m.calls = append(m.calls, "ADRsByStatus:"+status.String())
	return m.summaries, m.err
}

func (m *mockQueryService) Status(context.Context) (domain.CatalogStatus, error) {
	m.calls = append(m.calls, "Status")
	return m.status, m.err
}

func (m *mockQueryService) Invalidate() {
	m.invalidated++
}

func (m *mockQueryService) Refresh(context.Context) (domain.CatalogStatus, error) {
	m.calls = append(m.calls, "Refresh")
	return m.status, m.err
}

func newTestServer(t *testing.T, query driving.QueryService) *Server {
	t.Helper()

	server, err := NewServer(Ports{Query: query})
	require.NoError(t, err)
	return server
}

func sampleSummaries() []domain.DocumentSummary {
	return []domain.DocumentSummary{
		{
			ID:       "error-handling",
			Path:     "guidelines/error-handling.md",
			Title:    "Error Handling",
			Type:     domain.DocTypeCodingGuideline,
			Category: "reliability",
			Language: "go",
			Summary:  "Wrap errors with context.",
		},
		{
			ID:       "0001-use-postgres",
			Path:     "adr/0001-use-postgres.md",
			Title:    "Use Postgres",
			Type:     domain.DocTypeADR,
			Category: "architecture",
			Status:   domain.StatusAccepted,
			Summary:  "Postgres as the primary store.",
		},
	}
}

func sampleDocument() *domain.Document {
	return &domain.Document{
		ID:       "error-handling",
		Path:     "guidelines/error-handling.md",
		Title:    "Error Handling",
		Type:     domain.DocTypeCodingGuideline,
		Category: "reliability",
		Tags:     []string{"errors", "go"},
		Language: "go",
		Summary:  "Wrap errors with context.",
		Content:  "# Error Handling\n\nAlways wrap errors with %w and a short prefix.",
	}
}
