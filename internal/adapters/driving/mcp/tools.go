package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

// defaultSearchLimit caps search results when the caller gives no limit.
const defaultSearchLimit = 10

// ListDocumentsInput is the input for the list_documents tool.
type ListDocumentsInput struct {
	Type     string `json:"type,omitempty" jsonschema:"only documents of this type: coding-guideline, style-guide, adr, recommendation or document"`
	Category string `json:"category,omitempty" jsonschema:"only documents in this category, matched case-insensitively"`
	Language string `json:"language,omitempty" jsonschema:"only documents for this programming language, matched case-insensitively"`
}

// DocumentSummaryOutput is the listing form of a document in tool results.
type DocumentSummaryOutput struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
	Language string `json:"language,omitempty"`
	Status   string `json:"status,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// ListDocumentsOutput is the output of the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentSummaryOutput `json:"documents"`
	Count     int                     `json:"count"`
}

// GetDocumentInput is the input for the get_document tool.
type GetDocumentInput struct {
	ID   string `json:"id,omitempty" jsonschema:"document identifier"`
	Path string `json:"path,omitempty" jsonschema:"corpus-relative path, used when id is not given"`
}

// GetDocumentOutput is the output of the get_document tool.
type GetDocumentOutput struct {
	ID           string            `json:"id"`
	Path         string            `json:"path"`
	Title        string            `json:"title"`
	Type         string            `json:"type"`
	Category     string            `json:"category,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Language     string            `json:"language,omitempty"`
	Status       string            `json:"status,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	Content      string            `json:"content"`
	Extra        map[string]string `json:"extra,omitempty"`
	ParseWarning bool              `json:"parse_warning,omitempty"`
}

// SearchDocumentsInput is the input for the search_documents tool.
type SearchDocumentsInput struct {
	Query string `json:"query" jsonschema:"substring matched case-insensitively against titles, tags and content"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchDocumentsOutput is the output of the search_documents tool.
type SearchDocumentsOutput struct {
	Documents []DocumentSummaryOutput `json:"documents"`
	Count     int                     `json:"count"`
}

// ListADRsInput is the input for the list_adrs tool.
type ListADRsInput struct {
	Status string `json:"status,omitempty" jsonschema:"only ADRs with this lifecycle status: proposed, accepted, deprecated or superseded"`
}

// ListADRsOutput is the output of the list_adrs tool.
type ListADRsOutput struct {
	Documents []DocumentSummaryOutput `json:"documents"`
	Count     int                     `json:"count"`
}

// RefreshCorpusInput is the input for the refresh_corpus tool. It carries
// no fields.
type RefreshCorpusInput struct{}

// CatalogStatusOutput reports the catalog lifecycle.
type CatalogStatusOutput struct {
	State         string `json:"state"`
	Generation    string `json:"generation,omitempty"`
	Fingerprint   string `json:"fingerprint,omitempty"`
	BuiltAt       string `json:"built_at,omitempty"`
	DocumentCount int    `json:"document_count"`
	WarningCount  int    `json:"warning_count"`
	LastError     string `json:"last_error,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the guidance documents in the corpus, optionally filtered by type, category or programming language. Combined filters intersect.",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch a single guidance document with its full markdown content, looked up by id or by corpus-relative path.",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search guidance documents by substring across titles, tags and content.",
	}, s.handleSearchDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_adrs",
		Description: "List architecture decision records, optionally narrowed to one lifecycle status.",
	}, s.handleListADRs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_corpus",
		Description: "Rebuild the catalogue from the source and report the resulting status.",
	}, s.handleRefreshCorpus)
}

func (s *Server) handleListDocuments(ctx context.Context, _ *mcp.CallToolRequest, input ListDocumentsInput) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	var (
		summaries []domain.DocumentSummary
		err       error
	)

	switch {
	case input.Type != "":
		var docType domain.DocType
		docType, err = domain.ParseDocType(input.Type)
		if err != nil {
			return nil, ListDocumentsOutput{}, err
		}
		summaries, err = s.ports.Query.ListByType(ctx, docType)
	case input.Category != "":
		summaries, err = s.ports.Query.ListByCategory(ctx, input.Category)
	case input.Language != "":
		summaries, err = s.ports.Query.ListByLanguage(ctx, input.Language)
	default:
		summaries, err = s.ports.Query.Summaries(ctx)
	}
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	summaries = narrowSummaries(summaries, input)

	return nil, ListDocumentsOutput{
		Documents: toSummaryOutputs(summaries),
		Count:     len(summaries),
	}, nil
}

func (s *Server) handleGetDocument(ctx context.Context, _ *mcp.CallToolRequest, input GetDocumentInput) (*mcp.CallToolResult, GetDocumentOutput, error) {
	var (
		doc *domain.Document
		err error
	)

	switch {
	case input.ID != "":
		doc, err = s.ports.Query.Get(ctx, input.ID)
	case input.Path != "":
		doc, err = s.ports.Query.GetByPath(ctx, input.Path)
	default:
		return nil, GetDocumentOutput{}, fmt.Errorf("%w: either id or path is required", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}

	return nil, toDocumentOutput(doc), nil
}

func (s *Server) handleSearchDocuments(ctx context.Context, _ *mcp.CallToolRequest, input SearchDocumentsInput) (*mcp.CallToolResult, SearchDocumentsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	summaries, err := s.ports.Query.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchDocumentsOutput{}, err
	}
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}

	return nil, SearchDocumentsOutput{
		Documents: toSummaryOutputs(summaries),
		Count:     len(summaries),
	}, nil
}

func (s *Server) handleListADRs(ctx context.Context, _ *mcp.CallToolRequest, input ListADRsInput) (*mcp.CallToolResult, ListADRsOutput, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, ListADRsOutput{}, err
	}

	summaries, err := s.ports.Query.ADRsByStatus(ctx, status)
	if err != nil {
		return nil, ListADRsOutput{}, err
	}

	return nil, ListADRsOutput{
		Documents: toSummaryOutputs(summaries),
		Count:     len(summaries),
	}, nil
}

func (s *Server) handleRefreshCorpus(ctx context.Context, _ *mcp.CallToolRequest, _ RefreshCorpusInput) (*mcp.CallToolResult, CatalogStatusOutput, error) {
	status, err := s.ports.Query.Refresh(ctx)
	if err != nil {
		return nil, CatalogStatusOutput{}, err
	}

	return nil, toStatusOutput(status), nil
}

// narrowSummaries applies the category and language filters on top of
// whatever the routed query already matched. Re-applying the routed
// filter is harmless, so no bookkeeping about which one ran.
func narrowSummaries(summaries []domain.DocumentSummary, input ListDocumentsInput) []domain.DocumentSummary {
	if input.Category == "" && input.Language == "" {
		return summaries
	}

	narrowed := make([]domain.DocumentSummary, 0, len(summaries))
	for _, summary := range summaries {
		if input.Category != "" && !strings.EqualFold(summary.Category, input.Category) {
			continue
		}
		if input.Language != "" && !strings.EqualFold(summary.Language, input.Language) {
			continue
		}
		narrowed = append(narrowed, summary)
	}
	return narrowed
}

func toSummaryOutputs(summaries []domain.DocumentSummary) []DocumentSummaryOutput {
	outputs := make([]DocumentSummaryOutput, len(summaries))
	for i, summary := range summaries {
		outputs[i] = DocumentSummaryOutput{
			ID:       summary.ID,
			Path:     summary.Path,
			Title:    summary.Title,
			Type:     summary.Type.String(),
			Category: summary.Category,
			Language: summary.Language,
			Status:   summary.Status.String(),
			Summary:  summary.Summary,
		}
	}
	return outputs
}

func toDocumentOutput(doc *domain.Document) GetDocumentOutput {
	return GetDocumentOutput{
		ID:           doc.ID,
		Path:         doc.Path,
		Title:        doc.Title,
		Type:         doc.Type.String(),
		Category:     doc.Category,
		Tags:         doc.Tags,
		Language:     doc.Language,
		Status:       doc.Status.String(),
		Summary:      doc.Summary,
		Content:      doc.Content,
		Extra:        doc.Extra,
		ParseWarning: doc.ParseWarning,
	}
}

func toStatusOutput(status domain.CatalogStatus) CatalogStatusOutput {
	out := CatalogStatusOutput{
		State:         status.State.String(),
		Generation:    status.Generation,
		Fingerprint:   status.Fingerprint,
		DocumentCount: status.DocumentCount,
		WarningCount:  status.WarningCount,
		LastError:     status.LastError,
	}
	if !status.BuiltAt.IsZero() {
		out.BuiltAt = status.BuiltAt.UTC().Format(time.RFC3339)
	}
	return out
}
