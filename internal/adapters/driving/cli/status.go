package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/guidedex/internal/logger"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the catalogue status",
	Long: `Builds the catalogue if it has not been built yet, then reports its
lifecycle state, generation and document counts. A failed build is
reported in the status rather than aborting the command.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output the status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := context.Background()

	// Trigger the lazy build; the failure shows up in the status below.
	if _, err := queryService.Summaries(ctx); err != nil {
		logger.Warn("Catalogue build failed: %v", err)
	}

	status, err := queryService.Status(ctx)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if statusJSON {
		return outputJSON(cmd, status)
	}

	cmd.Printf("Catalogue status:\n\n")
	cmd.Printf("  State:        %s\n", status.State)
	if status.Generation != "" {
		cmd.Printf("  Generation:   %s\n", status.Generation)
		cmd.Printf("  Fingerprint:  %s\n", status.Fingerprint)
		cmd.Printf("  Built:        %s\n", status.BuiltAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("  Documents:    %d\n", status.DocumentCount)
		cmd.Printf("  Warnings:     %d\n", status.WarningCount)
	}
	if status.LastError != "" {
		cmd.Printf("  Last error:   %s\n", status.LastError)
	}
	return nil
}
