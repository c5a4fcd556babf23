// Package parser turns raw markdown files into domain documents.
//
// Each file may open with a YAML metadata block delimited by "---" lines.
// Parsing is best effort: a malformed block never rejects the file, it
// yields a document with defaulted metadata and ParseWarning set.
package parser

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// frontMatterRE matches a complete YAML metadata block at the start of a
// file. The closing "---" must appear unindented (at column 0); "---"
// inside YAML block scalars is always indented, so this is unambiguous
// without a full YAML-aware boundary scanner.
var frontMatterRE = regexp.MustCompile(`(?s)^---\n(.*?)\n---(?:\n|$)`)

// summaryLength caps derived summaries, in runes.
const summaryLength = 200

// Parser extracts metadata and content from markdown files.
type Parser struct{}

// New creates a new markdown parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds a document from the raw file.
//
// Metadata keys recognised: id, title, type, category, tags, language,
// status, abstract, description. Unknown keys are preserved in Extra.
// Missing fields are derived: the identifier from the file name stem, the
// title from the first heading or the file name, the summary from the
// opening of the body.
func (p *Parser) Parse(raw domain.RawDocument) domain.Document {
	content := string(raw.Content)

	meta, body, warning := splitFrontMatter(content)

	doc := domain.Document{
		Path:         raw.Path,
		Content:      body,
		ContentHash:  fmt.Sprintf("%016x", xxhash.Sum64String(body)),
		ParseWarning: warning,
	}
	applyMetadata(&doc, meta)

	if doc.ID == "" {
		doc.ID = fileStem(raw.Path)
	}
	if doc.Title == "" {
		doc.Title = deriveTitle(body, raw.Path)
	}
	if doc.Summary == "" {
		doc.Summary = excerpt(stripMarkdown(body), summaryLength)
	}

	return doc
}

// splitFrontMatter separates the metadata block from the body.
// Three outcomes: no block at all (empty map, no warning), a block that
// parses (decoded map), or a block that fails to parse (empty map,
// warning set). In the last case the block is still stripped from the
// body so broken metadata does not leak into content.
func splitFrontMatter(content string) (map[string]any, string, bool) {
	loc := frontMatterRE.FindStringSubmatchIndex(content)
	if loc == nil {
		return nil, content, false
	}

	block := content[loc[2]:loc[3]]
	body := content[loc[1]:]

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, body, true
	}
	return meta, body, false
}

// applyMetadata copies recognised keys onto the document and collects the
// rest into Extra. Key matching ignores case.
func applyMetadata(doc *domain.Document, meta map[string]any) {
	for key, value := range meta {
		switch strings.ToLower(key) {
		case "id":
			doc.ID = stringValue(value)
		case "title":
			doc.Title = stringValue(value)
		case "type":
			doc.Type = domain.NormaliseDocType(stringValue(value))
		case "category":
			doc.Category = stringValue(value)
		case "tags":
			doc.Tags = stringList(value)
		case "language":
			doc.Language = stringValue(value)
		case "status":
			doc.Status = domain.NormaliseStatus(stringValue(value))
		case "abstract", "description":
			if doc.Summary == "" {
				doc.Summary = stringValue(value)
			}
		default:
			if doc.Extra == nil {
				doc.Extra = make(map[string]string)
			}
			doc.Extra[key] = stringValue(value)
		}
	}

	// A document that never declared a type is still a document.
	if doc.Type == "" {
		doc.Type = domain.DocTypeGeneric
	}
}

// stringValue renders a decoded YAML scalar as a trimmed string.
func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// stringList accepts either a YAML sequence or a comma-separated string.
func stringList(v any) []string {
	var items []string
	switch value := v.(type) {
	case []any:
		for _, item := range value {
			if s := stringValue(item); s != "" {
				items = append(items, s)
			}
		}
	case string:
		for _, part := range strings.Split(value, ",") {
			if s := strings.TrimSpace(part); s != "" {
				items = append(items, s)
			}
		}
	default:
		if s := stringValue(v); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// fileStem returns the file name without directory or extension.
func fileStem(p string) string {
	name := path.Base(p)
	return strings.TrimSuffix(name, path.Ext(name))
}
