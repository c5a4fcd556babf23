package cli

import (
	"context"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
	"github.com/custodia-labs/guidedex/internal/core/ports/driving"
)

// mockQueryService is a hand-rolled QueryService double. List operations
// return the canned summaries as-is; calls records which operations ran.
type mockQueryService struct {
	summaries   []domain.DocumentSummary
	document    *domain.Document
	status      domain.CatalogStatus
	err         error
	getErr      error
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
	if m.getErr != nil {
		return nil, m.getErr
	}
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
	return m.status, nil
}

func (m *mockQueryService) Invalidate() {
	m.invalidated++
}

func (m *mockQueryService) Refresh(context.Context) (domain.CatalogStatus, error) {
	m.calls = append(m.calls, "Refresh")
	return m.status, m.err
}

// mockSource is a Source double for the raw fetch path.
type mockSource struct {
	raw domain.RawDocument
	err error
}

var _ driven.Source = (*mockSource)(nil)

func (m *mockSource) Type() domain.SourceType { return domain.SourceLocal }

func (m *mockSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SupportsWatch: false}
}

func (m *mockSource) Validate(context.Context) error { return nil }

func (m *mockSource) List(context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)
	close(docs)
	close(errs)
	return docs, errs
}

func (m *mockSource) Fetch(_ context.Context, path string) (domain.RawDocument, error) {
	if m.err != nil {
		return domain.RawDocument{}, m.err
	}
	if m.raw.Path == "" {
		return domain.RawDocument{Path: path}, nil
	}
	return m.raw, nil
}

func (m *mockSource) Watch(context.Context) (<-chan struct{}, error) {
	return nil, domain.ErrWatchUnsupported
}

func (m *mockSource) Close() error { return nil }

// setupTestServices installs mock services in place of the lazily built
// production ones and returns both the mock and a cleanup that restores
// the previous state.
func setupTestServices(query *mockQueryService, source driven.Source) func() {
	oldQuery := queryService
	oldSource := corpusSource
	queryService = query
	corpusSource = source
	return func() {
		queryService = oldQuery
		corpusSource = oldSource
	}
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
