package github

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

const (
	// maxFileSize is the largest blob fetched. The API serves far bigger
	// files, but corpus documents beyond 1MB are noise.
	maxFileSize = 1 << 20

	// blobConcurrency bounds parallel blob fetches during a listing.
	blobConcurrency = 8
)

// Source fetches a markdown corpus from a single GitHub repository.
type Source struct {
	owner  string
	repo   string
	dir    string
	client *Client

	mu          sync.Mutex
	resolvedRef string
	closed      bool
}

// New creates a GitHub source from the given configuration.
func New(cfg domain.Config) (*Source, error) {
	owner, repo, ref, err := ParseRepository(cfg.Repository)
	if err != nil {
		return nil, err
	}

	dir, err := normaliseDir(cfg.Dir)
	if err != nil {
		return nil, err
	}

	return &Source{
		owner:       owner,
		repo:        repo,
		dir:         dir,
		resolvedRef: ref,
		client:      NewClient(cfg.Token, cfg.RequestTimeout),
	}, nil
}

// Type returns the source type identifier.
func (s *Source) Type() domain.SourceType {
	return domain.SourceGitHub
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		SupportsWatch:        false,
		SupportsValidation:   true,
		SupportsRateLimiting: true,
		RequiresAuth:         false,
	}
}

// Validate checks that the repository is reachable with the configured
// credentials.
func (s *Source) Validate(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	if _, err := s.client.GetRepository(ctx, s.owner, s.repo); err != nil {
		return s.repoError(err)
	}
	return nil
}

// List streams every markdown document in the corpus directory. The tree
// is resolved in one recursive call, then blob content is fetched with
// bounded concurrency. Both channels close once listing completes.
func (s *Source) List(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docsCh := make(chan domain.RawDocument)
	errsCh := make(chan error, 1)

	go func() {
		defer close(docsCh)
		defer close(errsCh)

		if err := s.ready(ctx); err != nil {
			errsCh <- err
			return
		}

		ref, err := s.resolveRef(ctx)
		if err != nil {
			errsCh <- s.repoError(err)
			return
		}

		tree, err := s.client.GetTree(ctx, s.owner, s.repo, ref)
		if err != nil {
			errsCh <- s.repoError(err)
			return
		}

		blobs := s.corpusBlobs(tree)

		docs := make([]domain.RawDocument, len(blobs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(blobConcurrency)
		for i, blob := range blobs {
			g.Go(func() error {
				content, err := s.client.GetBlob(gctx, s.owner, s.repo, blob.sha)
				if err != nil {
					return fmt.Errorf("blob %s: %w", blob.path, err)
				}
				docs[i] = domain.RawDocument{
					Path:    s.relPath(blob.path),
					Content: content,
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			errsCh <- mapSourceError(err)
			return
		}

		for _, doc := range docs {
			select {
			case <-ctx.Done():
				errsCh <- ctx.Err()
				return
			case docsCh <- doc:
			}
		}
	}()

	return docsCh, errsCh
}

// Fetch retrieves a single document by its corpus-relative path.
func (s *Source) Fetch(ctx context.Context, p string) (domain.RawDocument, error) {
	if err := s.ready(ctx); err != nil {
		return domain.RawDocument{}, err
	}

	rel := path.Clean(strings.TrimPrefix(p, "/"))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return domain.RawDocument{}, fmt.Errorf("%w: path %q", domain.ErrInvalidInput, p)
	}
	if !isMarkdown(rel) {
		return domain.RawDocument{}, fmt.Errorf("%w: %s", domain.ErrNotFound, rel)
	}

	ref, err := s.resolveRef(ctx)
	if err != nil {
		return domain.RawDocument{}, s.repoError(err)
	}

	full := rel
	if s.dir != "" {
		full = s.dir + "/" + rel
	}

	content, err := s.client.GetFileContent(ctx, s.owner, s.repo, full, ref)
	if err != nil {
		if IsNotFound(err) {
			return domain.RawDocument{}, fmt.Errorf("%w: %s", domain.ErrNotFound, rel)
		}
		return domain.RawDocument{}, mapSourceError(err)
	}

	return domain.RawDocument{Path: rel, Content: content}, nil
}

// Watch is not supported; the API has no change feed a CLI can hold open.
func (s *Source) Watch(_ context.Context) (<-chan struct{}, error) {
	return nil, domain.ErrWatchUnsupported
}

// Close releases the source. Subsequent calls fail with
// [domain.ErrSourceClosed].
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Source) ready(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return domain.ErrSourceClosed
	}
	return ctx.Err()
}

// resolveRef returns the ref to read from, resolving the default branch
// on first use when none was configured.
func (s *Source) resolveRef(ctx context.Context) (string, error) {
	s.mu.Lock()
	ref := s.resolvedRef
	s.mu.Unlock()
	if ref != "" {
		return ref, nil
	}

	repo, err := s.client.GetRepository(ctx, s.owner, s.repo)
	if err != nil {
		return "", err
	}
	ref = repo.GetDefaultBranch()
	if ref == "" {
		ref = "main"
	}

	s.mu.Lock()
	s.resolvedRef = ref
	s.mu.Unlock()
	return ref, nil
}

// repoError maps repository-level failures; a missing repository means
// the whole source is unavailable.
func (s *Source) repoError(err error) error {
	if IsNotFound(err) {
		return fmt.Errorf("%w: repository %s/%s not found",
			domain.ErrSourceUnavailable, s.owner, s.repo)
	}
	return mapSourceError(err)
}

// blobRef identifies one markdown file within the resolved tree.
type blobRef struct {
	path string
	sha  string
}

// corpusBlobs filters the tree down to markdown blobs inside the corpus
// directory.
func (s *Source) corpusBlobs(tree *gh.Tree) []blobRef {
	blobs := make([]blobRef, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" || entry.GetSize() > maxFileSize {
			continue
		}
		p := entry.GetPath()
		if !s.inDir(p) || !isMarkdown(p) || hasHiddenSegment(p) {
			continue
		}
		blobs = append(blobs, blobRef{path: p, sha: entry.GetSHA()})
	}
	return blobs
}

// inDir reports whether a repository path falls inside the corpus
// directory.
func (s *Source) inDir(p string) bool {
	if s.dir == "" {
		return true
	}
	return strings.HasPrefix(p, s.dir+"/")
}

// relPath converts a repository path to a corpus-relative one.
func (s *Source) relPath(p string) string {
	if s.dir == "" {
		return p
	}
	return strings.TrimPrefix(p, s.dir+"/")
}

func isMarkdown(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".md" || ext == ".markdown"
}

func hasHiddenSegment(p string) bool {
	for _, segment := range strings.Split(p, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
