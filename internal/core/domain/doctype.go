package domain

import (
	"fmt"
	"strings"
)

// DocType classifies a guidance document. The set is closed: declarations
// that do not match a known type normalise to DocTypeGeneric rather than
// being rejected.
type DocType string

const (
	// DocTypeCodingGuideline is a rule set for writing code.
	DocTypeCodingGuideline DocType = "coding-guideline"

	// DocTypeStyleGuide covers formatting and naming conventions.
	DocTypeStyleGuide DocType = "style-guide"

	// DocTypeADR is an architecture decision record.
	DocTypeADR DocType = "adr"

	// DocTypeRecommendation is a non-binding suggestion.
	DocTypeRecommendation DocType = "recommendation"

	// DocTypeGeneric is the fallback for absent or unrecognised declarations.
	DocTypeGeneric DocType = "document"
)

// DocTypes returns all document types in display order.
func DocTypes() []DocType {
	return []DocType{
		DocTypeCodingGuideline,
		DocTypeStyleGuide,
		DocTypeADR,
		DocTypeRecommendation,
		DocTypeGeneric,
	}
}

// IsValid checks if the document type is recognised.
func (t DocType) IsValid() bool {
	switch t {
	case DocTypeCodingGuideline, DocTypeStyleGuide, DocTypeADR, DocTypeRecommendation, DocTypeGeneric:
		return true
	}
	return false
}

// String returns the string representation.
func (t DocType) String() string {
	return string(t)
}

// docTypeFromKey resolves a folded key to a document type.
// Keys are lowercased with spaces, hyphens and underscores removed.
func docTypeFromKey(key string) (DocType, bool) {
	switch key {
	case "codingguideline", "codingguidelines", "guideline":
		return DocTypeCodingGuideline, true
	case "styleguide", "styleguides":
		return DocTypeStyleGuide, true
	case "adr", "architecturedecisionrecord", "decisionrecord":
		return DocTypeADR, true
	case "recommendation", "recommendations":
		return DocTypeRecommendation, true
	case "document", "generic":
		return DocTypeGeneric, true
	}
	return "", false
}

// foldTypeKey lowercases a declaration and strips separator characters,
// so "Style Guide", "style_guide" and "StyleGuide" fold to the same key.
func foldTypeKey(raw string) string {
	key := strings.ToLower(raw)
	for _, sep := range []string{" ", "-", "_"} {
		key = strings.ReplaceAll(key, sep, "")
	}
	return key
}

// NormaliseDocType maps a raw type declaration from document metadata onto
// the closed DocType set. Anything unrecognised, including the empty
// string, resolves to DocTypeGeneric. Corpus declarations are never
// rejected; a bad declaration just makes the document generic.
func NormaliseDocType(raw string) DocType {
	if t, ok := docTypeFromKey(foldTypeKey(raw)); ok {
		return t
	}
	return DocTypeGeneric
}

// ParseDocType maps caller input, such as a CLI flag or a tool argument,
// onto the DocType set. Unlike NormaliseDocType it rejects unknown values,
// so a typo surfaces as ErrInvalidInput instead of silently filtering on
// the generic type.
func ParseDocType(raw string) (DocType, error) {
	if t, ok := docTypeFromKey(foldTypeKey(raw)); ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown document type %q (valid: %s)", ErrInvalidInput, raw, joinDocTypes())
}

// joinDocTypes renders the valid types for error messages.
func joinDocTypes() string {
	types := DocTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// Status is the lifecycle state of a document. It is chiefly meaningful for
// architecture decision records, where the decision moves from proposed
// through accepted to deprecated or superseded.
type Status string

const (
	// StatusProposed marks a decision still under discussion.
	StatusProposed Status = "proposed"

	// StatusAccepted marks a decision in force.
	StatusAccepted Status = "accepted"

	// StatusDeprecated marks a decision no longer recommended.
	StatusDeprecated Status = "deprecated"

	// StatusSuperseded marks a decision replaced by a later one.
	StatusSuperseded Status = "superseded"
)

// Statuses returns all statuses in lifecycle order.
func Statuses() []Status {
	return []Status{StatusProposed, StatusAccepted, StatusDeprecated, StatusSuperseded}
}

// IsValid checks if the status is recognised.
func (s Status) IsValid() bool {
	switch s {
	case StatusProposed, StatusAccepted, StatusDeprecated, StatusSuperseded:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// NormaliseStatus maps a raw status declaration from document metadata onto
// the Status set, ignoring case and surrounding whitespace. Unrecognised
// declarations, including the empty string, resolve to the empty Status.
func NormaliseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return ""
	}
	return s
}

// ParseStatus maps caller input onto the Status set. The empty string is
// accepted and means "unfiltered"; anything else unrecognised is rejected
// with ErrInvalidInput.
func ParseStatus(raw string) (Status, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	s := NormaliseStatus(raw)
	if s == "" {
		names := make([]string, 0, len(Statuses()))
		for _, v := range Statuses() {
			names = append(names, v.String())
		}
		return "", fmt.Errorf("%w: unknown status %q (valid: %s)", ErrInvalidInput, raw, strings.Join(names, ", "))
	}
	return s, nil
}
