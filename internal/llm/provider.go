package llm

import "context"

// Provider defines the interface for chat-completion providers.
// Implementations forward the message sequence verbatim and return the
// first choice's text. They never retry internally; retry policy belongs
// to the caller.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
