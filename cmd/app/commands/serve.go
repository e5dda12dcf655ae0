package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"NextWorth/internal/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Starts the HTTP API and blocks until SIGINT or SIGTERM.

Routes:
  GET  /             service info
  GET  /health       liveness
  POST /api/predict  forecast
  POST /api/analyze  history statistics
  GET  /metrics      Prometheus`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("app initialization failed: %w", err)
	}
	defer cleanup()

	return app.Run()
}
