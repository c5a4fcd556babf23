package parser

import (
	"path"
	"regexp"
	"strings"
)

// Markdown constructs stripped when deriving summaries. Compiled once;
// the parser runs over every file in the corpus.
var (
	codeBlockRE    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRE   = regexp.MustCompile("`[^`]+`")
	imageRE        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRE         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRE      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRE   = regexp.MustCompile(`(?m)^>\s*`)
	horizontalRE   = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkerRE   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedListRE = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
)

// deriveTitle extracts a title from the first heading, falling back to the
// file name with separators mapped to spaces.
func deriveTitle(body, p string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	name := path.Base(p)
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

// stripMarkdown removes common markdown formatting for plain text use.
// This is a simplified implementation that handles common cases.
func stripMarkdown(content string) string {
	content = codeBlockRE.ReplaceAllString(content, "")
	content = inlineCodeRE.ReplaceAllString(content, "")
	content = imageRE.ReplaceAllString(content, "")
	content = linkRE.ReplaceAllString(content, "$1")
	content = headingRE.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = blockquoteRE.ReplaceAllString(content, "")
	content = horizontalRE.ReplaceAllString(content, "")
	content = listMarkerRE.ReplaceAllString(content, "")
	content = numberedListRE.ReplaceAllString(content, "")

	return strings.TrimSpace(content)
}

// excerpt collapses whitespace and truncates to at most n runes.
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
