package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-advisor/internal/config"
	"github.com/jonathan/job-advisor/internal/ingest"
	"github.com/jonathan/job-advisor/internal/retrieval"
)

var ingestCommand = &cobra.Command{
	Use:   "ingest",
	Short: "Build the report-extract index from local files or a web page",
	Long: `Chunks future-of-work report material, embeds the chunks and stores them
in the SQLite vector index used by the job_design_suggestions endpoint.`,
	RunE: ingestCmd,
}

var (
	ingestDir       string
	ingestURL       string
	ingestIndexPath string
)

func init() {
	ingestCommand.Flags().StringVarP(&ingestDir, "dir", "d", "", "Directory of .txt/.md report files to ingest")
	ingestCommand.Flags().StringVarP(&ingestURL, "url", "u", "", "URL of a report page to ingest")
	ingestCommand.Flags().StringVar(&ingestIndexPath, "index", "", "Index file path (defaults to INDEX_PATH)")
	rootCmd.AddCommand(ingestCommand)
}

func ingestCmd(_ *cobra.Command, _ []string) error {
	if (ingestDir == "") == (ingestURL == "") {
		return fmt.Errorf("exactly one of --dir or --url is required")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if ingestIndexPath == "" {
		ingestIndexPath = cfg.IndexPath
	}

	index, err := retrieval.OpenIndex(ingestIndexPath)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer func() { _ = index.Close() }()

	embedder := retrieval.NewAzureEmbedder(cfg.AzureAPIKey, cfg.AzureEndpoint, cfg.AzureAPIVersion, cfg.Models.Embedding)
	ing := ingest.New(embedder, index, logger)

	ctx := context.Background()
	var chunks int
	if ingestDir != "" {
		chunks, err = ing.FromDir(ctx, ingestDir)
	} else {
		chunks, err = ing.FromURL(ctx, ingestURL)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	total, err := index.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count index: %w", err)
	}
	fmt.Printf("Ingested %d chunks (%d total in index)\n", chunks, total)
	return nil
}
