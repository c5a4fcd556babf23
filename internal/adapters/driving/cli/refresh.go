package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the catalogue from the source",
	Long: `Invalidates the catalogue and rebuilds it from the source immediately,
reporting the outcome.

The catalogue lives in process memory, so the rebuilt generation lasts
for this invocation only. The command is chiefly a corpus health check:
it confirms the source is reachable and reports parse warnings.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	cmd.Println("Rebuilding catalogue...")

	status, err := queryService.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	cmd.Printf("Catalogue rebuilt: %d documents", status.DocumentCount)
	if status.WarningCount > 0 {
		cmd.Printf(" (%d with parse warnings)", status.WarningCount)
	}
	cmd.Println()
	return nil
}
