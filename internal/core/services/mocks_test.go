package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
)

// mockSource is a configurable Source for service tests.
type mockSource struct {
	docs    []domain.RawDocument
	listErr error // sent on the error channel after the docs
	block   bool  // hold the stream open until ctx is cancelled

	watchCh  chan struct{}
	watchErr error
	caps     driven.SourceCapabilities

	mu        sync.Mutex
	listCalls int
}

func (m *mockSource) Type() domain.SourceType { return domain.SourceLocal }

func (m *mockSource) Capabilities() driven.SourceCapabilities { return m.caps }

func (m *mockSource) Validate(_ context.Context) error { return nil }

func (m *mockSource) List(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()

	docsCh := make(chan domain.RawDocument)
	errsCh := make(chan error, 1)

	go func() {
		defer close(docsCh)
		defer close(errsCh)

		for _, doc := range m.docs {
			select {
			case docsCh <- doc:
			case <-ctx.Done():
				errsCh <- ctx.Err()
				return
			}
		}
		if m.block {
			<-ctx.Done()
			errsCh <- ctx.Err()
			return
		}
		if m.listErr != nil {
			errsCh <- m.listErr
		}
	}()

	return docsCh, errsCh
}

func (m *mockSource) Fetch(_ context.Context, path string) (domain.RawDocument, error) {
	for _, doc := range m.docs {
		if doc.Path == path {
			return doc, nil
		}
	}
	return domain.RawDocument{}, domain.ErrNotFound
}

func (m *mockSource) Watch(_ context.Context) (<-chan struct{}, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	return m.watchCh, nil
}

func (m *mockSource) Close() error { return nil }

func (m *mockSource) listCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// builderFunc adapts a closure to the CatalogBuilder interface.
type builderFunc func(ctx context.Context) (*domain.Catalog, error)

func (f builderFunc) Build(ctx context.Context) (*domain.Catalog, error) { return f(ctx) }

// countingBuilder wraps a builder and counts invocations.
type countingBuilder struct {
	mu    sync.Mutex
	calls int
	fn    builderFunc
}

func (b *countingBuilder) Build(ctx context.Context) (*domain.Catalog, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	return b.fn(ctx)
}

func (b *countingBuilder) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// rawFile builds a RawDocument from literal content.
func rawFile(path, content string) domain.RawDocument {
	return domain.RawDocument{Path: path, Content: []byte(content)}
}

// builtCatalog assembles a stamped catalog for query tests.
func builtCatalog(generation string, docs ...domain.Document) *domain.Catalog {
	cat, err := domain.BuildCatalog(docs)
	if err != nil {
		panic(err)
	}
	cat.Generation = generation
	cat.Fingerprint = fingerprint(cat.Documents())
	return cat
}
