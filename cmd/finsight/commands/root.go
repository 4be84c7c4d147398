package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Stock fundamental analysis API",
	Long: `Finsight

Stock analysis backend: per-ticker KPIs, Piotroski F-Score and
the Buffett indicator, served over HTTP or run as one-off commands.

Examples:
  go run ./cmd/finsight api
  go run ./cmd/finsight analyze AAPL
  go run ./cmd/finsight buffett`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
