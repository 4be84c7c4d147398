package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmorel/finsight/backend/pkg/config"
	"github.com/tmorel/finsight/backend/pkg/jsonutil"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// analyzeCmd runs a one-off analysis and prints the payload as JSON.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker or company name]",
	Short: "Run a one-off stock analysis",
	Long: `Fetches market data for a ticker or company name, computes KPIs,
the Piotroski F-Score and the histories, and prints the payload as JSON.

Example:
  go run ./cmd/finsight analyze AAPL
  go run ./cmd/finsight analyze "air liquide"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	service, _ := newAnalysisService(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := service.Analyze(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analyze %q: %w", args[0], err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonutil.Sanitize(result))
}
