package driven

import (
	"context"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

// Source fetches corpus files from wherever they live.
// Each source type (local directory, github repository) implements this
// interface.
type Source interface {
	// Type returns the source type identifier.
	Type() domain.SourceType

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// Validate checks if the source is reachable and properly configured.
	// For a local source this checks the corpus directory exists and is
	// readable. For a remote source this makes a lightweight API call.
	// Returns nil if ready, an error describing the problem otherwise.
	Validate(ctx context.Context) error

	// List enumerates every markdown file in the corpus.
	// Returns channels for files and errors. The file channel closes when
	// enumeration completes; an error on the error channel aborts the
	// enumeration. Files arrive in no particular order.
	List(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Fetch retrieves a single file by its corpus-relative path.
	// Returns domain.ErrNotFound if the path does not exist.
	Fetch(ctx context.Context, path string) (domain.RawDocument, error)

	// Watch listens for corpus changes and signals on the returned channel.
	// Only available if SupportsWatch is true; other sources return
	// domain.ErrWatchUnsupported. The channel closes when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources.
	Close() error
}

// SourceCapabilities describes what a source supports.
type SourceCapabilities struct {
	// SupportsWatch indicates the source can push change events.
	SupportsWatch bool

	// SupportsValidation indicates Validate() performs an actual check.
	SupportsValidation bool

	// SupportsRateLimiting indicates the source throttles itself against
	// a remote API. Informational; callers never throttle on its behalf.
	SupportsRateLimiting bool

	// RequiresAuth indicates the source needs credentials.
	// False for local sources.
	RequiresAuth bool
}
