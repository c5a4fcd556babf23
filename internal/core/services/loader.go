package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
	"github.com/custodia-labs/guidedex/internal/logger"
)

// Ensure Loader implements the builder contract used by the query service.
var _ CatalogBuilder = (*Loader)(nil)

// Loader builds catalog generations by streaming the corpus from a source
// and parsing every file.
type Loader struct {
	source driven.Source
	parser driven.DocumentParser
}

// NewLoader creates a new catalog loader.
func NewLoader(source driven.Source, parser driven.DocumentParser) *Loader {
	return &Loader{
		source: source,
		parser: parser,
	}
}

// Build fetches the whole corpus and aggregates it into a new generation.
//
// Parse failures are tolerated per document; the file still enters the
// catalog with defaulted metadata. Source failures are not tolerated: any
// error on the source's error channel aborts the build so a half-fetched
// corpus is never published.
func (l *Loader) Build(ctx context.Context) (*domain.Catalog, error) {
	logger.Section("Catalogue Build")
	start := time.Now()

	docsCh, errsCh := l.source.List(ctx)

	var docs []domain.Document
	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("list corpus: %w", err)
			}

		case raw, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			logger.Debug("Parsing: %s", raw.Path)
			doc := l.parser.Parse(raw)
			if doc.ParseWarning {
				logger.Warn("Malformed metadata in %s, continuing with defaults", raw.Path)
			}
			docs = append(docs, doc)
		}
	}

	cat, err := domain.BuildCatalog(docs)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	cat.Generation = uuid.New().String()
	cat.BuiltAt = time.Now()
	cat.Fingerprint = fingerprint(cat.Documents())

	logger.Info("Catalogue built: %d documents, %d warnings in %s",
		cat.Len(), cat.WarningCount(), time.Since(start).Round(time.Millisecond))
	return cat, nil
}

// fingerprint digests path and content hash pairs in catalog order.
// Two generations over identical corpus content share a fingerprint even
// though their generation IDs differ.
func fingerprint(docs []domain.Document) string {
	h := xxhash.New()
	for _, doc := range docs {
		h.WriteString(doc.Path)
		h.WriteString(":")
		h.WriteString(doc.ContentHash)
		h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
