package vectordb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/docschat/docschat/internal/embeddings"
)

const collectionName = "corpus"

// snapshotFile is the single exported index file under the store directory.
// Persisting writes the whole corpus in one export, so readers load either
// the old snapshot or the new one, never a mix.
const snapshotFile = "corpus.gob.gz"

// ChromemStore implements VectorStore using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore. The embedder is
// used only for text queries; ingested documents carry precomputed
// embeddings.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, &StoreError{Op: "create collection", Err: err}
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedder:   embedder,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) ReplaceAll(ctx context.Context, docs []Document) error {
	// Drop and recreate the collection so stale records never survive a
	// re-ingestion.
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return &StoreError{Op: "drop collection", Err: err}
	}
	col, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return &StoreError{Op: "create collection", Err: err}
	}
	s.collection = col

	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:        doc.ID,
			Content:   doc.Content,
			Embedding: doc.Embedding,
			Metadata:  metadataToMap(doc.Metadata),
		}
	}

	if err := s.collection.AddDocuments(ctx, chromDocs, 1); err != nil {
		return &StoreError{Op: "add documents", Err: err}
	}
	return nil
}

func (s *ChromemStore) NearestNeighbors(ctx context.Context, queryVector []float32, k int) ([]SearchResult, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}

	// chromem-go requires nResults <= collection size.
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, queryVector, k, nil, nil)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return convertResults(results), nil
}

func (s *ChromemStore) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}

	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return convertResults(results), nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	if err := s.db.ExportToFile(dir+"/"+snapshotFile, true, ""); err != nil {
		return &StoreError{Op: "persist", Err: err}
	}
	return nil
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(dir+"/"+snapshotFile, ""); err != nil {
		return &StoreError{Op: "load", Err: err}
	}

	// Re-acquire the collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return &StoreError{Op: "load", Err: fmt.Errorf("collection %q not found after import", collectionName)}
	}
	s.collection = col
	return nil
}

func convertResults(results []chromem.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Document: Document{
				ID:        r.ID,
				Content:   r.Content,
				Embedding: r.Embedding,
				Metadata:  mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}
	return out
}

// metadataToMap converts DocumentMetadata to a flat map[string]string for chromem.
func metadataToMap(m DocumentMetadata) map[string]string {
	return map[string]string{
		"content_hash": m.ContentHash,
		"words":        strconv.Itoa(m.Words),
		"ingested_at":  m.IngestedAt.UTC().Format(time.RFC3339),
	}
}

// mapToMetadata converts a flat map[string]string back to DocumentMetadata.
func mapToMetadata(m map[string]string) DocumentMetadata {
	words, _ := strconv.Atoi(m["words"])
	ingestedAt, _ := time.Parse(time.RFC3339, m["ingested_at"])
	return DocumentMetadata{
		ContentHash: m["content_hash"],
		Words:       words,
		IngestedAt:  ingestedAt,
	}
}
