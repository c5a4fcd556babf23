package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

var (
	listType     string
	listCategory string
	listLanguage string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the corpus",
	Long: `Lists the documents in the corpus, ordered by path. Filters narrow the
listing by type, category or programming language; combined filters
intersect.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by document type (coding-guideline, style-guide, adr, recommendation, document)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().StringVar(&listLanguage, "language", "", "filter by programming language")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	summaries, err := listDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if listJSON {
		return outputJSON(cmd, summaries)
	}

	if len(summaries) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Printf("Documents:\n\n")
	outputSummaryList(cmd, summaries)
	cmd.Printf("Total: %d documents\n", len(summaries))
	return nil
}

// listDocuments routes the strongest filter to the query service and
// narrows the rest here. Re-applying the routed filter is harmless.
func listDocuments(ctx context.Context) ([]domain.DocumentSummary, error) {
	var (
		summaries []domain.DocumentSummary
		err       error
	)

	switch {
	case listType != "":
		var docType domain.DocType
		docType, err = domain.ParseDocType(listType)
		if err != nil {
			return nil, err
		}
		summaries, err = queryService.ListByType(ctx, docType)
	case listCategory != "":
		summaries, err = queryService.ListByCategory(ctx, listCategory)
	case listLanguage != "":
		summaries, err = queryService.ListByLanguage(ctx, listLanguage)
	default:
		summaries, err = queryService.Summaries(ctx)
	}
	if err != nil {
		return nil, err
	}

	if listCategory == "" && listLanguage == "" {
		return summaries, nil
	}

	narrowed := make([]domain.DocumentSummary, 0, len(summaries))
	for _, summary := range summaries {
		if listCategory != "" && !strings.EqualFold(summary.Category, listCategory) {
			continue
		}
		if listLanguage != "" && !strings.EqualFold(summary.Language, listLanguage) {
			continue
		}
		narrowed = append(narrowed, summary)
	}
	return narrowed, nil
}
