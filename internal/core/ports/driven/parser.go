package driven

import "github.com/custodia-labs/guidedex/internal/core/domain"

// DocumentParser turns a raw corpus file into a domain document.
//
// Parsing is best effort and never fails the file: a malformed metadata
// block yields a document with defaulted metadata and ParseWarning set,
// so one broken file cannot take the rest of the corpus down with it.
type DocumentParser interface {
	// Parse extracts metadata and content from the raw file.
	Parse(raw domain.RawDocument) domain.Document
}
