package localfs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
)

// writeCorpus lays out files under a temp dir and returns its path.
func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(base, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return base
}

// drain collects the full output of a List call.
func drain(t *testing.T, docsCh <-chan domain.RawDocument, errsCh <-chan error) ([]domain.RawDocument, error) {
	t.Helper()
	var docs []domain.RawDocument
	var listErr error
	for docsCh != nil || errsCh != nil {
		select {
		case doc, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			docs = append(docs, doc)
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil && listErr == nil {
				listErr = err
			}
		}
	}
	return docs, listErr
}

func TestNew(t *testing.T) {
	source := New("/corpus")
	require.NotNil(t, source)
	assert.Equal(t, domain.SourceLocal, source.Type())

	var _ driven.Source = source
}

func TestSource_Capabilities(t *testing.T) {
	caps := New("/corpus").Capabilities()
	assert.True(t, caps.SupportsWatch)
	assert.True(t, caps.SupportsValidation)
	assert.False(t, caps.RequiresAuth)
	assert.False(t, caps.SupportsRateLimiting)
}

func TestSource_Validate(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		base := writeCorpus(t, map[string]string{"a.md": "# A\n"})
		assert.NoError(t, New(base).Validate(context.Background()))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := New(filepath.Join(t.TempDir(), "gone")).Validate(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})

	t.Run("base path is a file", func(t *testing.T) {
		base := writeCorpus(t, map[string]string{"a.md": "# A\n"})
		err := New(filepath.Join(base, "a.md")).Validate(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})
}

func TestSource_List(t *testing.T) {
	base := writeCorpus(t, map[string]string{
		"readme.md":                "# Readme\n",
		"adr/0001-db.md":           "# DB\n",
		"guides/style.md":          "# Style\n",
		"guides/deep/sub.markdown": "# Sub\n",
		"guides/notes.txt":         "not markdown",
		".hidden/secret.md":        "# Hidden dir\n",
		"guides/.draft.md":         "# Hidden file\n",
	})

	docsCh, errsCh := New(base).List(context.Background())
	docs, err := drain(t, docsCh, errsCh)
	require.NoError(t, err)

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		paths = append(paths, doc.Path)
	}
	sort.Strings(paths)
	assert.Equal(t, []string{
		"adr/0001-db.md",
		"guides/deep/sub.markdown",
		"guides/style.md",
		"readme.md",
	}, paths)

	for _, doc := range docs {
		if doc.Path == "adr/0001-db.md" {
			assert.Equal(t, "# DB\n", string(doc.Content))
		}
	}
}

func TestSource_List_MissingBase(t *testing.T) {
	source := New(filepath.Join(t.TempDir(), "gone"))

	docsCh, errsCh := source.List(context.Background())
	docs, err := drain(t, docsCh, errsCh)
	assert.Empty(t, docs)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSource_List_CancelledContext(t *testing.T) {
	base := writeCorpus(t, map[string]string{"a.md": "# A\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docsCh, errsCh := New(base).List(ctx)
	docs, err := drain(t, docsCh, errsCh)
	assert.Empty(t, docs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Fetch(t *testing.T) {
	base := writeCorpus(t, map[string]string{
		"adr/0001-db.md": "# DB\n\nDecision.\n",
		"notes.txt":      "plain",
	})
	source := New(base)
	ctx := context.Background()

	t.Run("existing file", func(t *testing.T) {
		doc, err := source.Fetch(ctx, "adr/0001-db.md")
		require.NoError(t, err)
		assert.Equal(t, "adr/0001-db.md", doc.Path)
		assert.Equal(t, "# DB\n\nDecision.\n", string(doc.Content))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := source.Fetch(ctx, "adr/9999.md")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("non-markdown path", func(t *testing.T) {
		_, err := source.Fetch(ctx, "notes.txt")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("path escaping the base", func(t *testing.T) {
		_, err := source.Fetch(ctx, "../outside.md")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSource_Closed(t *testing.T) {
	base := writeCorpus(t, map[string]string{"a.md": "# A\n"})
	source := New(base)
	require.NoError(t, source.Close())

	_, err := source.Fetch(context.Background(), "a.md")
	assert.ErrorIs(t, err, domain.ErrSourceClosed)

	docsCh, errsCh := source.List(context.Background())
	_, listErr := drain(t, docsCh, errsCh)
	assert.ErrorIs(t, listErr, domain.ErrSourceClosed)

	assert.ErrorIs(t, source.Validate(context.Background()), domain.ErrSourceClosed)
}
