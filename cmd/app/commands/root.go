package commands

import (
	"github.com/spf13/cobra"

	"NextWorth/pkg/config"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "NextWorth price forecast service",
	Long: `NextWorth ML service.

Forecasts monthly closing prices from a short price history.

Examples:
  app serve --config config/config.yaml
  app predict --file request.json`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config/config.yaml", "config file path")
}

func loadConfig() (*config.Config, error) {
	return config.LoadWithEnv(configFile)
}
