package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driving"
	"github.com/custodia-labs/guidedex/internal/logger"
)

// Ensure Query implements the interface.
var _ driving.QueryService = (*Query)(nil)

// CatalogBuilder produces a fresh catalog generation.
// The query service does not care how; Loader is the production
// implementation.
type CatalogBuilder interface {
	Build(ctx context.Context) (*domain.Catalog, error)
}

// buildKey is the singleflight key; there is only ever one catalog.
const buildKey = "catalog"

// Query answers catalog queries, building generations lazily.
//
// The first query after start-up or invalidation triggers a build.
// Concurrent queries arriving mid-build share the in-flight result via
// singleflight rather than each starting their own. A failed rebuild
// keeps the previous generation available in degraded mode; a failed
// first build leaves nothing to serve and the next query retries.
type Query struct {
	builder CatalogBuilder
	group   singleflight.Group

	mu       sync.RWMutex
	state    domain.CatalogState
	current  *domain.Catalog // serving generation when Ready
	lastGood *domain.Catalog // newest successful generation, kept for degraded service
	lastErr  error
}

// NewQuery creates a query service over the given builder.
func NewQuery(builder CatalogBuilder) *Query {
	return &Query{
		builder: builder,
		state:   domain.StateUnbuilt,
	}
}

// Summaries returns every document in listing form, ordered by path.
func (q *Query) Summaries(ctx context.Context) ([]domain.DocumentSummary, error) {
	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("summaries: %w", err)
	}
	return summarise(cat.Documents()), nil
}

// Get retrieves a full document by its identifier.
func (q *Query) Get(ctx context.Context, id string) (*domain.Document, error) {
	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	doc, ok := cat.ByID(id)
	if !ok {
		return nil, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	return &doc, nil
}

// GetByPath retrieves a full document by its corpus-relative path.
func (q *Query) GetByPath(ctx context.Context, path string) (*domain.Document, error) {
	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get document by path: %w", err)
	}
	doc, ok := cat.ByPath(path)
	if !ok {
		return nil, fmt.Errorf("document at %q: %w", path, domain.ErrNotFound)
	}
	return &doc, nil
}

// ListByType returns summaries of documents of the given type.
func (q *Query) ListByType(ctx context.Context, t domain.DocType) ([]domain.DocumentSummary, error) {
	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list by type: %w", err)
	}
	return summarise(cat.ByType(t)), nil
}

// ListByCategory returns summaries of documents in the given category.
func (q *Query) ListByCategory(ctx context.Context, category string) ([]domain.DocumentSummary, error) {
	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}
	return summarise(cat.ByCategory(category)), nil
}

// ListByLanguage returns summaries of documents for the given language.
func (q *Query) ListByLanguage(ctx context.Context, language string) ([]domain.DocumentSummary, error) {
	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list by language: %w", err)
	}
	return summarise(cat.ByLanguage(language)), nil
}

// Search returns summaries of documents matching the term.
func (q *Query) Search(ctx context.Context, term string) ([]domain.DocumentSummary, error) {
	logger.Section("Search Execution")
	logger.Debug("Term: %q", term)

	// Return empty for an empty term; searching for nothing is not
	// the same as listing everything.
	if strings.TrimSpace(term) == "" {
		logger.Debug("Empty term, returning no results")
		return []domain.DocumentSummary{}, nil
	}

	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matches := cat.Search(term)
	logger.Info("Search %q matched %d of %d documents", term, len(matches), cat.Len())
	return summarise(matches), nil
}

// ADRsByStatus returns summaries of decision records, optionally narrowed
// to one lifecycle status.
func (q *Query) ADRsByStatus(ctx context.Context, status domain.Status) ([]domain.DocumentSummary, error) {
	cat, err := q.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adrs: %w", err)
	}
	return summarise(cat.ADRs(status)), nil
}

// Status reports the catalog lifecycle without triggering a build.
func (q *Query) Status(_ context.Context) (domain.CatalogStatus, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	status := domain.CatalogStatus{State: q.state}
	if q.lastErr != nil {
		status.LastError = q.lastErr.Error()
	}

	gen := q.current
	if gen == nil {
		gen = q.lastGood
	}
	if gen != nil {
		status.Generation = gen.Generation
		status.Fingerprint = gen.Fingerprint
		status.BuiltAt = gen.BuiltAt
		status.DocumentCount = gen.Len()
		status.WarningCount = gen.WarningCount()
	}
	return status, nil
}

// Invalidate marks the current generation stale. The next query rebuilds.
// The newest good generation is retained so a failed rebuild can still
// serve degraded answers.
func (q *Query) Invalidate() {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch q.state {
	case domain.StateReady, domain.StateStaleDegraded:
		q.state = domain.StateUnbuilt
		q.current = nil
		logger.Info("Catalogue invalidated")
	}
}

// Refresh invalidates and rebuilds immediately.
// On failure the returned status reflects the degraded or failed state
// alongside the error.
func (q *Query) Refresh(ctx context.Context) (domain.CatalogStatus, error) {
	q.Invalidate()
	_, buildErr := q.build(ctx)
	status, _ := q.Status(ctx)
	return status, buildErr
}

// snapshot hands back the generation this query should read.
// Ready serves the current generation, StaleDegraded serves the retained
// one without retrying the failed build, and everything else goes through
// the build path.
func (q *Query) snapshot(ctx context.Context) (*domain.Catalog, error) {
	q.mu.RLock()
	state, current, stale := q.state, q.current, q.lastGood
	q.mu.RUnlock()

	switch state {
	case domain.StateReady:
		return current, nil
	case domain.StateStaleDegraded:
		logger.Debug("Serving stale generation %s", stale.Generation)
		return stale, nil
	default:
		return q.build(ctx)
	}
}

// build runs the builder at most once at a time. Callers queueing behind
// an in-flight build receive its result. The context belongs to the
// caller that actually started the build; later joiners wait it out.
func (q *Query) build(ctx context.Context) (*domain.Catalog, error) {
	v, err, _ := q.group.Do(buildKey, func() (any, error) {
		// A build may have finished while this caller queued for the
		// flight group. Serve its outcome instead of rebuilding.
		q.mu.Lock()
		switch q.state {
		case domain.StateReady:
			cat := q.current
			q.mu.Unlock()
			return cat, nil
		case domain.StateStaleDegraded:
			cat := q.lastGood
			q.mu.Unlock()
			return cat, nil
		}
		q.state = domain.StateBuilding
		q.mu.Unlock()

		cat, err := q.builder.Build(ctx)

		q.mu.Lock()
		defer q.mu.Unlock()
		if err != nil {
			q.lastErr = err
			if q.lastGood != nil {
				q.state = domain.StateStaleDegraded
				logger.Warn("Rebuild failed, keeping generation %s: %v", q.lastGood.Generation, err)
			} else {
				q.state = domain.StateFailed
				logger.Warn("Catalogue build failed: %v", err)
			}
			return nil, err
		}

		q.current = cat
		q.lastGood = cat
		q.lastErr = nil
		q.state = domain.StateReady
		logger.Info("Generation %s now serving", cat.Generation)
		return cat, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Catalog), nil
}

// summarise reduces documents to their listing form.
func summarise(docs []domain.Document) []domain.DocumentSummary {
	out := make([]domain.DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Summarise())
	}
	return out
}
