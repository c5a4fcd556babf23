package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

var (
	showJSON bool
	showRaw  bool
)

var showCmd = &cobra.Command{
	Use:   "show [id-or-path]",
	Short: "Show a document",
	Long: `Prints a document's metadata and content. The argument is tried as a
document id first, then as a corpus-relative path.

With --raw the argument must be a path; the file is fetched from the
source as stored, metadata block included, bypassing the catalogue.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the document as JSON")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the file as stored in the source")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := context.Background()

	if showRaw {
		raw, err := corpusSource.Fetch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		cmd.Print(string(raw.Content))
		return nil
	}

	doc, err := queryService.Get(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		doc, err = queryService.GetByPath(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	if showJSON {
		return outputJSON(cmd, doc)
	}

	outputDocument(cmd, doc)
	return nil
}

func outputDocument(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:     %s\n", doc.Title)
	cmd.Printf("  Path:      %s\n", doc.Path)
	cmd.Printf("  Type:      %s\n", doc.Type)
	if doc.Category != "" {
		cmd.Printf("  Category:  %s\n", doc.Category)
	}
	if len(doc.Tags) > 0 {
		cmd.Printf("  Tags:      %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Language != "" {
		cmd.Printf("  Language:  %s\n", doc.Language)
	}
	if doc.Status != "" {
		cmd.Printf("  Status:    %s\n", doc.Status)
	}
	if doc.ParseWarning {
		cmd.Println("  Warning:   metadata block could not be parsed")
	}

	if len(doc.Extra) > 0 {
		cmd.Println("\n  Extra metadata:")
		for k, v := range doc.Extra {
			cmd.Printf("    %s: %s\n", k, v)
		}
	}

	cmd.Println()
	cmd.Println(doc.Content)
}
