package vectordb

import (
	"context"
	"fmt"
)

// VectorStore defines the interface for persisting documents and answering
// nearest-neighbor queries over their embeddings.
type VectorStore interface {
	// ReplaceAll replaces the entire stored corpus with the given batch.
	// An empty batch leaves the store empty. Callers never observe a mixed
	// old/new corpus through this store instance.
	ReplaceAll(ctx context.Context, docs []Document) error

	// NearestNeighbors returns up to k documents ordered by decreasing
	// similarity to the query vector. An empty store yields an empty
	// result, not an error.
	NearestNeighbors(ctx context.Context, queryVector []float32, k int) ([]SearchResult, error)

	// Search embeds the query text and performs a nearest-neighbor search.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)

	// Count returns the total number of documents in the store.
	Count() int

	// Persist saves the store's data to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error
}

// StoreError reports a failed store operation: connect, query, or write.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vector store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
