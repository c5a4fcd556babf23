package driving

import (
	"context"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

// QueryService exposes the catalog's query operations to external actors.
//
// Every query operation reads one catalog generation for its whole
// duration, so repeated calls against the same generation return the same
// results. The first query after start-up or invalidation triggers a
// catalog build; concurrent callers share the in-flight build rather than
// starting their own. Cancellation of the supplied context is honoured
// during builds.
type QueryService interface {
	// Summaries returns every document in listing form, ordered by path.
	Summaries(ctx context.Context) ([]domain.DocumentSummary, error)

	// Get retrieves a full document by its identifier.
	// Returns domain.ErrNotFound if no document has that identifier.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByPath retrieves a full document by its corpus-relative path.
	// Returns domain.ErrNotFound if no document has that path.
	GetByPath(ctx context.Context, path string) (*domain.Document, error)

	// ListByType returns summaries of documents of the given type,
	// ordered by path. An empty result is not an error.
	ListByType(ctx context.Context, t domain.DocType) ([]domain.DocumentSummary, error)

	// ListByCategory returns summaries of documents in the given
	// category, matched case-insensitively, ordered by path.
	ListByCategory(ctx context.Context, category string) ([]domain.DocumentSummary, error)

	// ListByLanguage returns summaries of documents for the given
	// language, matched case-insensitively, ordered by path.
	ListByLanguage(ctx context.Context, language string) ([]domain.DocumentSummary, error)

	// Search returns summaries of documents whose title, tags or content
	// contain the term, ordered by path. An empty term returns no
	// results.
	Search(ctx context.Context, term string) ([]domain.DocumentSummary, error)

	// ADRsByStatus returns summaries of architecture decision records,
	// optionally narrowed to one lifecycle status, ordered by path.
	ADRsByStatus(ctx context.Context, status domain.Status) ([]domain.DocumentSummary, error)

	// Status reports the catalog lifecycle without triggering a build.
	Status(ctx context.Context) (domain.CatalogStatus, error)

	// Invalidate marks the current generation stale. The next query
	// rebuilds; until it succeeds, the old generation remains available
	// for degraded service.
	Invalidate()

	// Refresh invalidates and rebuilds immediately, returning the
	// resulting catalog status.
	Refresh(ctx context.Context) (domain.CatalogStatus, error)
}
