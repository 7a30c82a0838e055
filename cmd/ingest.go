package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/docschat/docschat/internal/catalog"
	"github.com/docschat/docschat/internal/ingest"
	"github.com/docschat/docschat/internal/loader"
	"github.com/docschat/docschat/internal/progress"
	"github.com/docschat/docschat/internal/vectordb"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed the documentation corpus and build the vector index",
	Long: `Walks the configured documentation tree, renders each markdown file to
plain text, embeds it, and replaces the persisted vector index and
corpus catalog with the new batch. If any document fails, nothing from
the run is persisted.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	database, err := catalog.Open(filepath.Join(cfg.StorePath, "catalog.db"))
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer database.Close()

	pipeline := ingest.New(embedder, store, catalog.NewStore(database), loader.Config{
		RootDir: cfg.DocsDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	}, cfg.MaxEmbedWords)

	reporter := progress.NewReporter()
	started := false
	pipeline.SetProgressFunc(func(processed, total int, identifier string) {
		if !started {
			reporter.Start(total)
			started = true
		}
		reporter.Update(processed, identifier)
	})

	result, err := pipeline.Run(ctx, cfg.StorePath)
	if started {
		reporter.Finish()
	}
	if err != nil {
		return err
	}

	if result.DocumentsStored == 0 {
		fmt.Printf("No documents found under %s; nothing stored.\n", cfg.DocsDir)
		return nil
	}

	fmt.Printf("Stored %d documents in %s (run %s).\n",
		result.DocumentsStored, result.Duration.Round(10*time.Millisecond), result.RunID)
	return nil
}
