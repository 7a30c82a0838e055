package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docschat/docschat/internal/catalog"
	"github.com/docschat/docschat/internal/embeddings"
	"github.com/docschat/docschat/internal/loader"
	"github.com/docschat/docschat/internal/vectordb"
)

// AbortError reports the document whose embedding failed, aborting the
// whole ingestion run. Nothing is persisted when a run aborts.
type AbortError struct {
	Identifier string
	Err        error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("ingestion aborted at %s: %v", e.Identifier, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }

// ProgressFunc is called after each document is embedded.
type ProgressFunc func(processed int, total int, identifier string)

// Result summarizes a completed ingestion run.
type Result struct {
	DocumentsStored int
	RunID           string
	Duration        time.Duration
}

// Pipeline converts a documentation tree into embedded records and replaces
// the persisted corpus with them in a single batch.
type Pipeline struct {
	embedder      embeddings.Embedder
	store         vectordb.VectorStore
	catalog       *catalog.Store // optional
	loaderCfg     loader.Config
	maxEmbedWords int
	onProgress    ProgressFunc
}

// New creates a Pipeline. catalogStore may be nil when no catalog is kept.
// maxEmbedWords bounds the text sent to the embedding model; longer
// documents keep their full content but embed a truncated prefix.
func New(embedder embeddings.Embedder, store vectordb.VectorStore, catalogStore *catalog.Store, loaderCfg loader.Config, maxEmbedWords int) *Pipeline {
	return &Pipeline{
		embedder:      embedder,
		store:         store,
		catalog:       catalogStore,
		loaderCfg:     loaderCfg,
		maxEmbedWords: maxEmbedWords,
	}
}

// SetProgressFunc sets the progress callback.
func (p *Pipeline) SetProgressFunc(fn ProgressFunc) {
	p.onProgress = fn
}

// Run loads the corpus, embeds every document, and replaces the vector
// store's contents with the new batch. The batch write happens only after
// every document has embedded successfully: the first failure aborts the
// run with an AbortError and leaves the persisted corpus untouched. An
// empty corpus is a no-op reporting zero documents stored.
func (p *Pipeline) Run(ctx context.Context, persistDir string) (*Result, error) {
	start := time.Now()

	docs, err := loader.LoadAll(p.loaderCfg)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	if len(docs) == 0 {
		return &Result{DocumentsStored: 0, Duration: time.Since(start)}, nil
	}

	records := make([]vectordb.Document, 0, len(docs))
	infos := make([]catalog.DocumentInfo, 0, len(docs))
	now := time.Now().UTC()

	for i, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			return nil, &AbortError{Identifier: doc.Identifier, Err: fmt.Errorf("document has no content")}
		}

		input := truncateWords(doc.Content, p.maxEmbedWords)
		vectors, err := p.embedder.Embed(ctx, []string{input})
		if err != nil {
			return nil, &AbortError{Identifier: doc.Identifier, Err: err}
		}
		if len(vectors) != 1 || len(vectors[0]) != p.embedder.Dimensions() {
			return nil, &AbortError{Identifier: doc.Identifier, Err: fmt.Errorf("embedder returned a malformed vector")}
		}

		words := len(strings.Fields(doc.Content))
		records = append(records, vectordb.Document{
			ID:        doc.Identifier,
			Content:   doc.Content,
			Embedding: vectors[0],
			Metadata: vectordb.DocumentMetadata{
				ContentHash: doc.ContentHash,
				Words:       words,
				IngestedAt:  now,
			},
		})
		infos = append(infos, catalog.DocumentInfo{
			Identifier:  doc.Identifier,
			Words:       words,
			ContentHash: doc.ContentHash,
			IngestedAt:  now,
		})

		if p.onProgress != nil {
			p.onProgress(i+1, len(docs), doc.Identifier)
		}
	}

	if err := p.store.ReplaceAll(ctx, records); err != nil {
		return nil, fmt.Errorf("writing corpus: %w", err)
	}

	if persistDir != "" {
		if err := p.store.Persist(ctx, persistDir); err != nil {
			return nil, fmt.Errorf("persisting corpus: %w", err)
		}
	}

	result := &Result{
		DocumentsStored: len(records),
		Duration:        time.Since(start),
	}

	if p.catalog != nil {
		runID, err := p.catalog.RecordRun(ctx, start, infos)
		if err != nil {
			return nil, fmt.Errorf("recording catalog run: %w", err)
		}
		result.RunID = runID
	}

	return result, nil
}

// truncateWords returns the first limit whitespace-delimited words of s.
func truncateWords(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) <= limit {
		return s
	}
	return strings.Join(fields[:limit], " ")
}
