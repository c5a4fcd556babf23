package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

var (
	adrsStatus string
	adrsJSON   bool
)

var adrsCmd = &cobra.Command{
	Use:   "adrs",
	Short: "List architecture decision records",
	Long: `Lists the architecture decision records in the corpus, ordered by
path. Use --status to narrow to one lifecycle status: proposed,
accepted, deprecated or superseded.`,
	Args: cobra.NoArgs,
	RunE: runADRs,
}

func init() {
	adrsCmd.Flags().StringVarP(&adrsStatus, "status", "s", "", "filter by lifecycle status")
	adrsCmd.Flags().BoolVar(&adrsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(adrsCmd)
}

func runADRs(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	status, err := domain.ParseStatus(adrsStatus)
	if err != nil {
		return err
	}

	summaries, err := queryService.ADRsByStatus(context.Background(), status)
	if err != nil {
		return fmt.Errorf("listing ADRs failed: %w", err)
	}

	if adrsJSON {
		return outputJSON(cmd, summaries)
	}

	if len(summaries) == 0 {
		cmd.Println("No ADRs found.")
		return nil
	}

	cmd.Printf("Architecture decision records:\n\n")
	outputSummaryList(cmd, summaries)
	cmd.Printf("Total: %d ADRs\n", len(summaries))
	return nil
}
