package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-advisor/internal/advisor"
	"github.com/jonathan/job-advisor/internal/config"
	"github.com/jonathan/job-advisor/internal/llm"
	"github.com/jonathan/job-advisor/internal/metrics"
	"github.com/jonathan/job-advisor/internal/retrieval"
	"github.com/jonathan/job-advisor/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the Job Advisor HTTP server",
	RunE:  serveCmd,
}

var servePort int

func init() {
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to listen on")
	rootCmd.AddCommand(serveCommand)
}

func serveCmd(_ *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	index, err := retrieval.OpenIndex(cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer func() { _ = index.Close() }()

	primary := llm.NewAzureOpenAI(cfg.AzureAPIKey, cfg.AzureEndpoint, cfg.AzureAPIVersion)
	fast := llm.NewGroq(cfg.GroqAPIKey)
	embedder := retrieval.NewAzureEmbedder(cfg.AzureAPIKey, cfg.AzureEndpoint, cfg.AzureAPIVersion, cfg.Models.Embedding)
	collector := metrics.NewCollector()

	adv := advisor.New(primary, fast, embedder, index, cfg.Models, collector)

	srv := server.New(server.Config{
		Port:    servePort,
		APIKey:  cfg.APIKey,
		Metrics: collector.Handler(),
		Logger:  logger,
	}, adv)

	return srv.Start()
}
