package domain

// Document represents a parsed guidance document.
// It is the canonical representation after parsing. Once a catalog
// generation has been built over it, it is never mutated.
type Document struct {
	// ID is the unique identifier within the corpus. Documents declare it
	// in their metadata; without a declaration it derives from the file name.
	ID string

	// Path is the corpus-relative path of the backing file.
	Path string

	// Type classifies the document within the closed DocType set.
	Type DocType

	// Category is a free-form grouping such as "architecture" or "testing".
	Category string

	// Tags are free-form labels used for search matching.
	Tags []string

	// Language is the programming language the document applies to, if any.
	Language string

	// Status is the lifecycle state, chiefly meaningful for ADRs.
	Status Status

	// Title is the human-readable title.
	Title string

	// Content is the document body with the metadata block stripped.
	Content string

	// Summary is a short abstract. Declared in metadata or derived from
	// the opening of the body.
	Summary string

	// Extra holds metadata keys the parser does not recognise.
	// They are preserved for display but never indexed.
	Extra map[string]string

	// ContentHash is a hex digest of Content, used for fingerprinting.
	ContentHash string

	// ParseWarning records that the metadata block was present but
	// malformed. The document still carries defaulted metadata.
	ParseWarning bool
}

// Summarise reduces the document to its listing form.
func (d Document) Summarise() DocumentSummary {
	return DocumentSummary{
		ID:       d.ID,
		Path:     d.Path,
		Title:    d.Title,
		Type:     d.Type,
		Category: d.Category,
		Language: d.Language,
		Status:   d.Status,
		Summary:  d.Summary,
	}
}

// DocumentSummary is the compact listing form of a document.
// It carries enough for a caller to decide whether to fetch the full text.
type DocumentSummary struct {
	// ID is the unique document identifier.
	ID string

	// Path is the corpus-relative path.
	Path string

	// Title is the human-readable title.
	Title string

	// Type classifies the document.
	Type DocType

	// Category is the free-form grouping.
	Category string

	// Language is the programming language, if any.
	Language string

	// Status is the lifecycle state, if any.
	Status Status

	// Summary is the short abstract.
	Summary string
}
