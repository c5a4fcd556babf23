package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/guidedex/internal/adapters/driving/mcp"
	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/services"
	"github.com/custodia-labs/guidedex/internal/logger"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Use --watch to invalidate the catalogue when the corpus changes, so the
next query serves the updated documents. Sources that cannot push change
events, such as GitHub, log a notice and serve without watching.

Examples:
  # Stdio mode (default, for Claude Desktop)
  guidedex serve

  # HTTP mode (for MCP Inspector, remote access)
  guidedex serve --port 8080

  # Watch a local corpus for edits
  guidedex serve --watch

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "guidedex": {
        "command": "/path/to/guidedex",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "invalidate the catalogue on corpus changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	server, err := mcp.NewServer(mcp.Ports{Query: queryService})
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// The configuration file can also turn watching on.
	if serveWatch || loadedConfig.Watch {
		err := services.WatchInvalidate(ctx, corpusSource, queryService)
		switch {
		case errors.Is(err, domain.ErrWatchUnsupported):
			logger.Info("Source does not support watching, serving without it")
		case err != nil:
			return fmt.Errorf("watch corpus: %w", err)
		}
	}

	if servePort > 0 {
		addr := fmt.Sprintf(":%d", servePort)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
