package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docschat/docschat/internal/catalog"
	"github.com/docschat/docschat/internal/query"
	"github.com/docschat/docschat/internal/server"
	"github.com/docschat/docschat/internal/sidebar"
	"github.com/docschat/docschat/internal/vectordb"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat API server",
	Long: `Starts the HTTP API server: POST /api/chat answers questions against
the ingested corpus, GET /api/sidebar serves the navigation config, and
GET /api/corpus lists the indexed documents.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, closeLog, err := newLifecycleLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}
	if err := store.Load(context.Background(), cfg.StorePath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load vector store from %s: %v\n", cfg.StorePath, err)
		fmt.Fprintf(os.Stderr, "Answers will have no context. Run `docschat ingest` first.\n")
	}

	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating completion provider: %w", err)
	}

	database, err := catalog.Open(filepath.Join(cfg.StorePath, "catalog.db"))
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer database.Close()

	sb, err := sidebar.Load(cfg.SidebarFile)
	if err != nil {
		return fmt.Errorf("loading sidebar: %w", err)
	}

	svc := query.NewService(embedder, store, provider, query.Options{
		Model:         cfg.Model,
		TopK:          cfg.TopK,
		ContextWords:  cfg.ContextWords,
		MaxEmbedWords: cfg.MaxEmbedWords,
		SystemPrompt:  cfg.SystemPrompt,
		Timeout:       time.Duration(cfg.RequestTimeoutSec) * time.Second,
	}, logger)

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: true,
	}, svc, catalog.NewStore(database), sb, logger)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "docschat v%s starting on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Documents indexed: %d\n", store.Count())

	return srv.Start()
}
