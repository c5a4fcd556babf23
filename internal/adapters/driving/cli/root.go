// Package cli implements the guidedex command line interface.
//
// Commands share one query service over the configured corpus source.
// Services are built lazily on first use, so commands that never touch
// the corpus, such as version, work without a configuration file.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/guidedex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/guidedex/internal/connectors"
	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
	"github.com/custodia-labs/guidedex/internal/core/ports/driving"
	"github.com/custodia-labs/guidedex/internal/core/services"
	"github.com/custodia-labs/guidedex/internal/logger"
	"github.com/custodia-labs/guidedex/internal/parser"
)

// version is reported by the version command. Overridden from main with
// the build-time value.
var version = "dev"

var (
	configPath string
	verboseLog bool
)

// Services shared by the commands.
var (
	queryService driving.QueryService
	corpusSource driven.Source
	loadedConfig domain.Config
)

var rootCmd = &cobra.Command{
	Use:   "guidedex",
	Short: "Serve a team's guidance corpus to humans and AI assistants",
	Long: `Guidedex indexes a corpus of markdown guidance documents - coding
guidelines, style guides, architecture decision records and
recommendations - and serves them through a CLI and an MCP server.

The corpus lives in a local directory or a GitHub repository; the
configuration file names the source. See "guidedex serve --help" for
AI assistant integration.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", file.DefaultPath, "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseLog, "verbose", "v", false, "verbose logging to stderr")

	cobra.OnInitialize(func() {
		logger.SetVerbose(verboseLog)
	})
}

// Execute runs the root command with the given context. Cancelling the
// context stops long-running commands such as serve.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string the version command reports.
func SetVersion(v string) {
	version = v
}

// initServices loads the configuration and wires the source, parser and
// query service. The first caller pays the cost; later calls within the
// same run reuse the instances.
func initServices() error {
	if queryService != nil {
		return nil
	}

	cfg, err := file.Load(configPath)
	if err != nil {
		return err
	}

	source, err := connectors.New(cfg)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	loadedConfig = cfg
	corpusSource = source
	queryService = services.NewQuery(services.NewLoader(source, parser.New()))
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputSummaryList prints document summaries as an indented, numbered
// listing.
func outputSummaryList(cmd *cobra.Command, summaries []domain.DocumentSummary) {
	for i := range summaries {
		title := summaries[i].Title
		if title == "" {
			title = summaries[i].ID
		}

		label := summaries[i].Type.String()
		if summaries[i].Status != "" {
			label += ", " + summaries[i].Status.String()
		}

		cmd.Printf("  [%d] %s (%s)\n", i+1, title, label)
		cmd.Printf("      %s\n", summaries[i].Path)
		if summaries[i].Summary != "" {
			cmd.Printf("      %s\n", summaries[i].Summary)
		}
		cmd.Println()
	}
}
