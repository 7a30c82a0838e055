package query

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/docschat/docschat/internal/embeddings"
	"github.com/docschat/docschat/internal/llm"
	"github.com/docschat/docschat/internal/vectordb"
)

// ErrEmptyQuery is returned when the query text is empty or whitespace.
// Callers at the request boundary map it to a client error; it never
// reaches the embedding or completion providers.
var ErrEmptyQuery = errors.New("query is empty")

// Error wraps a failure from one of the pipeline stages: embed, retrieve,
// or complete. The service never returns a partial answer.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("query failed during %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options configures a Service.
type Options struct {
	Model         string
	TopK          int           // number of documents retrieved per query
	ContextWords  int           // word budget for the assembled context
	MaxEmbedWords int           // query text sent to the embedder is truncated to this
	SystemPrompt  string        // always the first message, so retrieved content cannot override it
	Timeout       time.Duration // per-call timeout across all remote stages (0 = none)
}

// Service answers a single user query: embed the query, retrieve the
// nearest documents, assemble a bounded context, and invoke the completion
// provider. Each call is stateless and independent.
type Service struct {
	embedder embeddings.Embedder
	store    vectordb.VectorStore
	provider llm.Provider
	opts     Options
	logger   *log.Logger
}

// NewService creates a query service. logger may be nil, in which case the
// default logger is used.
func NewService(embedder embeddings.Embedder, store vectordb.VectorStore, provider llm.Provider, opts Options, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		embedder: embedder,
		store:    store,
		provider: provider,
		opts:     opts,
		logger:   logger,
	}
}

// Answer runs the full retrieval-augmented pipeline for one query and
// returns the generated reply. Any stage failure is wrapped in *Error and
// propagated; no degraded answer is ever returned as success.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	s.logger.Printf("query received (%d chars)", len(query))

	input := truncateWords(query, s.opts.MaxEmbedWords)
	vectors, err := s.embedder.Embed(ctx, []string{input})
	if err != nil {
		return "", &Error{Stage: "embed", Err: err}
	}
	if len(vectors) != 1 {
		return "", &Error{Stage: "embed", Err: fmt.Errorf("embedder returned %d vectors, expected 1", len(vectors))}
	}
	s.logger.Printf("query embedded (%d dimensions)", len(vectors[0]))

	results, err := s.store.NearestNeighbors(ctx, vectors[0], s.opts.TopK)
	if err != nil {
		return "", &Error{Stage: "retrieve", Err: err}
	}
	s.logger.Printf("retrieved %d documents", len(results))

	contents := make([]string, len(results))
	for i, r := range results {
		contents[i] = r.Document.Content
	}
	contextText := BuildContext(contents, s.opts.ContextWords)
	s.logger.Printf("assembled context (%d words)", len(strings.Fields(contextText)))

	// Fixed role ordering: system instructions first so the assistant's
	// framing cannot be overridden by retrieved content.
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: s.opts.SystemPrompt},
		{Role: llm.RoleUser, Content: query},
		{Role: llm.RoleSystem, Content: contextText},
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:    s.opts.Model,
		Messages: messages,
	})
	if err != nil {
		return "", &Error{Stage: "complete", Err: err}
	}
	s.logger.Printf("completion generated (%d output tokens)", resp.OutputTokens)

	return resp.Content, nil
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
