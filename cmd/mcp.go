package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/docschat/docschat/internal/mcp"
	"github.com/docschat/docschat/internal/query"
	"github.com/docschat/docschat/internal/vectordb"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing documentation search and Q&A tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if err := store.Load(context.Background(), cfg.StorePath); err != nil {
			// Keep serving; search results will be empty until ingest runs.
			fmt.Fprintf(os.Stderr, "Warning: could not load vector store from %s: %v\n", cfg.StorePath, err)
			fmt.Fprintf(os.Stderr, "Run `docschat ingest` first.\n")
		}

		provider, err := createProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating completion provider: %w", err)
		}

		svc := query.NewService(embedder, store, provider, query.Options{
			Model:         cfg.Model,
			TopK:          cfg.TopK,
			ContextWords:  cfg.ContextWords,
			MaxEmbedWords: cfg.MaxEmbedWords,
			SystemPrompt:  cfg.SystemPrompt,
			Timeout:       time.Duration(cfg.RequestTimeoutSec) * time.Second,
		}, nil)

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "docschat MCP server started on stdio (documents=%d)\n", store.Count())

		srv := mcpserver.NewServer(store, svc)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
