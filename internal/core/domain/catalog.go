package domain

import (
	"sort"
	"strings"
	"time"
)

// Catalog is one immutable generation of the document index.
// All lookups read from structures laid down at build time; once a
// generation is published it never changes, so readers need no locking
// and see consistent results for its whole lifetime.
type Catalog struct {
	// Generation uniquely identifies this build.
	// Stamped by the loader before the generation is published.
	Generation string

	// BuiltAt is when the build completed.
	BuiltAt time.Time

	// Fingerprint is a digest over the corpus content, used to tell
	// whether a rebuild actually picked up changes.
	Fingerprint string

	docs       []Document // path-ascending
	warnings   int
	byID       map[string]int
	byPath     map[string]int
	byType     map[DocType][]int
	byCategory map[string][]int
	byLanguage map[string][]int
}

// BuildCatalog aggregates parsed documents into a catalog.
// It is a pure function of its input: no I/O, no clock, no randomness.
// Documents are ordered by path ascending. A duplicate identifier or path
// aborts the build with a DuplicateKeyError; the build never lets one
// document silently shadow another.
func BuildCatalog(docs []Document) (*Catalog, error) {
	ordered := make([]Document, len(docs))
	copy(ordered, docs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Path < ordered[j].Path })

	c := &Catalog{
		docs:       ordered,
		byID:       make(map[string]int, len(ordered)),
		byPath:     make(map[string]int, len(ordered)),
		byType:     make(map[DocType][]int),
		byCategory: make(map[string][]int),
		byLanguage: make(map[string][]int),
	}

	for i, doc := range ordered {
		if prev, ok := c.byID[doc.ID]; ok {
			return nil, &DuplicateKeyError{
				Field:      "id",
				Value:      doc.ID,
				FirstPath:  ordered[prev].Path,
				SecondPath: doc.Path,
			}
		}
		if prev, ok := c.byPath[doc.Path]; ok {
			return nil, &DuplicateKeyError{
				Field:      "path",
				Value:      doc.Path,
				FirstPath:  ordered[prev].Path,
				SecondPath: doc.Path,
			}
		}

		c.byID[doc.ID] = i
		c.byPath[doc.Path] = i
		c.byType[doc.Type] = append(c.byType[doc.Type], i)
		if doc.Category != "" {
			key := strings.ToLower(doc.Category)
			c.byCategory[key] = append(c.byCategory[key], i)
		}
		if doc.Language != "" {
			key := strings.ToLower(doc.Language)
			c.byLanguage[key] = append(c.byLanguage[key], i)
		}
		if doc.ParseWarning {
			c.warnings++
		}
	}

	return c, nil
}

// Len returns the number of documents in this generation.
func (c *Catalog) Len() int {
	return len(c.docs)
}

// WarningCount returns how many documents carried a parse warning.
func (c *Catalog) WarningCount() int {
	return c.warnings
}

// Documents returns every document ordered by path ascending.
// The slice is a copy; callers may not reach into the generation.
func (c *Catalog) Documents() []Document {
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// ByID retrieves a document by its identifier.
func (c *Catalog) ByID(id string) (Document, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Document{}, false
	}
	return c.docs[i], true
}

// ByPath retrieves a document by its corpus-relative path.
func (c *Catalog) ByPath(path string) (Document, bool) {
	i, ok := c.byPath[path]
	if !ok {
		return Document{}, false
	}
	return c.docs[i], true
}

// ByType returns all documents of the given type, ordered by path.
func (c *Catalog) ByType(t DocType) []Document {
	return c.collect(c.byType[t])
}

// ByCategory returns all documents in the given category, ordered by path.
// Category matching is exact but case-insensitive.
func (c *Catalog) ByCategory(category string) []Document {
	return c.collect(c.byCategory[strings.ToLower(category)])
}

// ByLanguage returns all documents for the given language, ordered by path.
// Language matching is exact but case-insensitive.
func (c *Catalog) ByLanguage(language string) []Document {
	return c.collect(c.byLanguage[strings.ToLower(language)])
}

// ADRs returns architecture decision records, ordered by path.
// A non-empty status narrows the result to records in that state.
func (c *Catalog) ADRs(status Status) []Document {
	idx := c.byType[DocTypeADR]
	out := make([]Document, 0, len(idx))
	for _, i := range idx {
		if status != "" && c.docs[i].Status != status {
			continue
		}
		out = append(out, c.docs[i])
	}
	return out
}

// Search returns documents whose title, tags or content contain the term,
// ordered by path. Matching is a case-insensitive substring test. Each
// document appears at most once however many fields it matches on. An
// empty or whitespace-only term returns no results rather than the whole
// catalog.
func (c *Catalog) Search(term string) []Document {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []Document{}
	}

	out := make([]Document, 0)
	for _, doc := range c.docs {
		if matchesTerm(doc, needle) {
			out = append(out, doc)
		}
	}
	return out
}

// matchesTerm reports whether the document matches an already-lowercased
// search term. Title and tags are checked before content as they are
// cheapest.
func matchesTerm(doc Document, needle string) bool {
	if strings.Contains(strings.ToLower(doc.Title), needle) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(doc.Content), needle)
}

// collect materialises documents for the given index positions.
// Always returns a non-nil slice so callers can range and serialise
// without nil checks.
func (c *Catalog) collect(idx []int) []Document {
	out := make([]Document, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.docs[i])
	}
	return out
}
