package cli

import (
	"github.com/spf13/cobra"

	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve starts the news categorization and fact-checking API.

Endpoints:
  GET  /health              service liveness
  POST /categorize          process JSON news items from the request body
  POST /upload              process an uploaded JSON file
  GET  /results/<filename>  fetch a saved results file
  GET  /list-results        list saved results files

Example:
  factlens serve
  factlens serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	processor, err := buildProcessor(cfg)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, processor)
	return srv.Run(cfg.Server.Addr)
}
