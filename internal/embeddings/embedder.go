package embeddings

import (
	"context"
	"fmt"
)

// Embedder defines the interface for generating text embeddings.
// Implementations make a remote call per batch and have no persistence
// side effects; they never retry internally.
type Embedder interface {
	// Embed generates embeddings for one or more texts. Every returned
	// vector has exactly Dimensions() elements.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// ProviderError reports a failed remote embedding call: network error,
// auth failure, rate limit, or a malformed response.
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when no HTTP status was received
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s embedding failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s embedding failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
