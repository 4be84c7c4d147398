package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmorel/finsight/backend/internal/analysis"
	"github.com/tmorel/finsight/backend/internal/api"
	"github.com/tmorel/finsight/backend/internal/api/handlers"
	"github.com/tmorel/finsight/backend/internal/buffett"
	"github.com/tmorel/finsight/backend/internal/external/worldbank"
	"github.com/tmorel/finsight/backend/internal/external/yahoo"
	"github.com/tmorel/finsight/backend/pkg/config"
	"github.com/tmorel/finsight/backend/pkg/httputil"
	"github.com/tmorel/finsight/backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /                        - Service info
  GET  /health                  - Health check
  GET  /api/search/{query}      - Ticker search
  GET  /api/analyze/{input}     - Full stock analysis
  GET  /api/news/{ticker}       - Recent headlines
  GET  /api/buffett-indicator   - Market cap / GDP per country

Example:
  go run ./cmd/finsight api
  go run ./cmd/finsight api --port 8000`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Wire services
	analysisService, yahooClient := newAnalysisService(cfg, log)
	buffettService := newBuffettService(cfg, log)

	// 4. Create handlers and router
	analysisHandler := handlers.NewAnalysisHandler(analysisService, yahooClient, log)
	buffettHandler := handlers.NewBuffettHandler(buffettService, log)
	router := api.NewRouter(analysisHandler, buffettHandler, log)

	// 5. Start server with graceful shutdown
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Infof("API server listening on :%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// newAnalysisService wires the market data client and the orchestrator.
func newAnalysisService(cfg *config.Config, log *logger.Logger) (*analysis.Service, *yahoo.Client) {
	httpClient := httputil.New(log, cfg.Yahoo.Timeout).
		WithRetry(cfg.Yahoo.MaxRetries, 1*time.Second).
		WithRateLimit(cfg.Yahoo.RatePerSec, 2)

	yahooClient := yahoo.NewClient(httpClient, cfg.Yahoo, log)
	return analysis.NewService(yahooClient, log), yahooClient
}

// newBuffettService wires the economic data client and the indicator
// service.
func newBuffettService(cfg *config.Config, log *logger.Logger) *buffett.Service {
	httpClient := httputil.New(log, cfg.WorldBank.Timeout)
	wbClient := worldbank.NewClient(httpClient, cfg.WorldBank, log)
	return buffett.NewService(wbClient, cfg.Buffett.Countries, log)
}
