package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmorel/finsight/backend/pkg/config"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// buffettCmd computes the macro valuation indicator once and prints it.
var buffettCmd = &cobra.Command{
	Use:   "buffett",
	Short: "Compute the Buffett indicator for the configured countries",
	Long: `Fetches total market capitalization and GDP per configured country
from the World Bank and prints the market-cap/GDP ratios as JSON.

Example:
  go run ./cmd/finsight buffett
  BUFFETT_COUNTRIES=US,JP go run ./cmd/finsight buffett`,
	RunE: runBuffett,
}

func init() {
	rootCmd.AddCommand(buffettCmd)
}

func runBuffett(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	service := newBuffettService(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	countries := service.Compute(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{"countries": countries})
}
