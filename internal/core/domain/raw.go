package domain

// RawDocument represents opaque bytes fetched from a corpus source.
// It is the source's output before parsing.
type RawDocument struct {
	// Path is the corpus-relative path of the file.
	// Always slash-separated, whatever the source platform.
	Path string

	// Content is the raw bytes.
	Content []byte
}
