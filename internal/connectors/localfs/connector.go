// Package localfs implements a corpus source over a local directory tree.
//
// The source walks the base path for markdown files, skipping hidden files
// and directories. It supports watch mode via fsnotify, so a running
// server can invalidate its catalog when files change on disk.
package localfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// defaultDebounce coalesces bursts of filesystem events into one signal.
const defaultDebounce = 250 * time.Millisecond

// Source reads the corpus from a directory on disk.
type Source struct {
	basePath string
	debounce time.Duration

	mu     sync.Mutex
	closed bool
}

// New creates a local filesystem source rooted at basePath.
func New(basePath string) *Source {
	return &Source{
		basePath: basePath,
		debounce: defaultDebounce,
	}
}

// Type returns the source type identifier.
func (s *Source) Type() domain.SourceType {
	return domain.SourceLocal
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		SupportsWatch:        true,
		SupportsValidation:   true,
		SupportsRateLimiting: false,
		RequiresAuth:         false,
	}
}

// Validate checks the corpus directory exists and is readable.
func (s *Source) Validate(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	info, err := os.Stat(s.basePath)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, s.basePath)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrSourceUnavailable, s.basePath)
	}

	// Readability check; permissions can deny a stat-able directory.
	f, err := os.Open(s.basePath)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, s.basePath)
	}
	return f.Close()
}

// List walks the corpus directory and streams every markdown file.
// Both channels close when the walk finishes. Any filesystem failure,
// including the base path itself being absent, aborts the walk with
// domain.ErrSourceUnavailable.
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

		err := filepath.WalkDir(s.basePath, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
			}
			if entry.IsDir() {
				if p != s.basePath && isHidden(entry.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if isHidden(entry.Name()) || !isMarkdown(entry.Name()) {
				return nil
			}

			content, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("%w: read %s: %v", domain.ErrSourceUnavailable, p, err)
			}

			rel, err := filepath.Rel(s.basePath, p)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
			}

			select {
			case docsCh <- domain.RawDocument{Path: filepath.ToSlash(rel), Content: content}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errsCh <- fmt.Errorf("walk corpus: %w", err)
		}
	}()

	return docsCh, errsCh
}

// Fetch reads a single markdown file by its corpus-relative path.
func (s *Source) Fetch(ctx context.Context, p string) (domain.RawDocument, error) {
	if err := s.ready(ctx); err != nil {
		return domain.RawDocument{}, err
	}

	rel, err := cleanRelPath(p)
	if err != nil {
		return domain.RawDocument{}, err
	}
	if !isMarkdown(rel) {
		return domain.RawDocument{}, fmt.Errorf("%q: %w", p, domain.ErrNotFound)
	}

	content, err := os.ReadFile(filepath.Join(s.basePath, filepath.FromSlash(rel)))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.RawDocument{}, fmt.Errorf("%q: %w", p, domain.ErrNotFound)
		}
		return domain.RawDocument{}, fmt.Errorf("%w: read %s: %v", domain.ErrSourceUnavailable, p, err)
	}

	return domain.RawDocument{Path: rel, Content: content}, nil
}

// Close releases resources.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ready checks for closure and context cancellation before any operation.
func (s *Source) ready(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return domain.ErrSourceClosed
	}
	return ctx.Err()
}

// cleanRelPath normalises a caller-supplied corpus path and refuses
// anything that would escape the base directory.
func cleanRelPath(p string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(p, "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: path %q", domain.ErrInvalidInput, p)
	}
	return cleaned, nil
}

// isMarkdown matches the file extensions the corpus indexes.
func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// isHidden matches dot-prefixed names.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
