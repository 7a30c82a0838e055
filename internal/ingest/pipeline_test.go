package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docschat/docschat/internal/catalog"
	"github.com/docschat/docschat/internal/loader"
	"github.com/docschat/docschat/internal/vectordb"
)

// failEmbedder embeds deterministically but fails on texts containing the
// failOn marker, to pin down which document aborts a run.
type failEmbedder struct {
	dims   int
	failOn string
	calls  int
}

func (e *failEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if e.failOn != "" && strings.Contains(text, e.failOn) {
			return nil, errors.New("provider rejected input")
		}
		vec := make([]float32, e.dims)
		for j, ch := range text {
			vec[(int(ch)+j)%e.dims] += 1.0
		}
		out[i] = vec
	}
	return out, nil
}

func (e *failEmbedder) Dimensions() int { return e.dims }
func (e *failEmbedder) Name() string    { return "mock" }

// recordingStore records ReplaceAll and Persist calls.
type recordingStore struct {
	replaced  [][]vectordb.Document
	persisted []string
}

func (s *recordingStore) ReplaceAll(_ context.Context, docs []vectordb.Document) error {
	s.replaced = append(s.replaced, docs)
	return nil
}

func (s *recordingStore) NearestNeighbors(context.Context, []float32, int) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (s *recordingStore) Search(context.Context, string, int) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (s *recordingStore) Count() int {
	if len(s.replaced) == 0 {
		return 0
	}
	return len(s.replaced[len(s.replaced)-1])
}

func (s *recordingStore) Persist(_ context.Context, dir string) error {
	s.persisted = append(s.persisted, dir)
	return nil
}

func (s *recordingStore) Load(context.Context, string) error { return nil }

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func newTestPipeline(t *testing.T, root string, embedder *failEmbedder, store vectordb.VectorStore) (*Pipeline, *catalog.Store) {
	t.Helper()
	database, err := catalog.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cat := catalog.NewStore(database)
	return New(embedder, store, cat, loader.Config{RootDir: root}, 6000), cat
}

func TestRun_StoresAllDocuments(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md": "# A\n\nalpha content here",
		"b.md": "# B\n\nbeta content here",
		"c.md": "# C\n\ngamma content here",
	})

	embedder := &failEmbedder{dims: 16}
	store := &recordingStore{}
	pipeline, cat := newTestPipeline(t, root, embedder, store)

	var progressed []string
	pipeline.SetProgressFunc(func(_, _ int, id string) {
		progressed = append(progressed, id)
	})

	result, err := pipeline.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.DocumentsStored != 3 {
		t.Errorf("DocumentsStored = %d, want 3", result.DocumentsStored)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(store.replaced) != 1 || len(store.replaced[0]) != 3 {
		t.Fatalf("expected one ReplaceAll with 3 documents, got %v", store.replaced)
	}
	if len(progressed) != 3 {
		t.Errorf("progress reported %d times, want 3", len(progressed))
	}

	for _, doc := range store.replaced[0] {
		if len(doc.Embedding) != embedder.Dimensions() {
			t.Errorf("%s: embedding has %d dimensions, want %d", doc.ID, len(doc.Embedding), embedder.Dimensions())
		}
		if doc.Metadata.Words == 0 {
			t.Errorf("%s: metadata words not recorded", doc.ID)
		}
	}

	docs, err := cat.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("catalog holds %d documents, want 3", len(docs))
	}
}

func TestRun_AbortsWholeBatchOnEmbeddingFailure(t *testing.T) {
	// Five documents; embedding fails on the third in enumeration order.
	root := writeDocs(t, map[string]string{
		"a.md": "# A\n\nfine",
		"b.md": "# B\n\nfine",
		"c.md": "# C\n\npoison marker",
		"d.md": "# D\n\nfine",
		"e.md": "# E\n\nfine",
	})

	embedder := &failEmbedder{dims: 8, failOn: "poison"}
	store := &recordingStore{}
	pipeline, cat := newTestPipeline(t, root, embedder, store)

	_, err := pipeline.Run(context.Background(), t.TempDir())

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("err = %v, want *AbortError", err)
	}
	if abort.Identifier != "c.md" {
		t.Errorf("abort identifier = %q, want c.md", abort.Identifier)
	}

	if len(store.replaced) != 0 {
		t.Error("store was written despite the aborted run")
	}
	if len(store.persisted) != 0 {
		t.Error("store was persisted despite the aborted run")
	}

	docs, err := cat.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("catalog holds %d documents after an aborted run, want 0", len(docs))
	}
}

func TestRun_EmptyCorpusIsNoOp(t *testing.T) {
	embedder := &failEmbedder{dims: 8}
	store := &recordingStore{}
	pipeline, _ := newTestPipeline(t, t.TempDir(), embedder, store)

	result, err := pipeline.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.DocumentsStored != 0 {
		t.Errorf("DocumentsStored = %d, want 0", result.DocumentsStored)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for an empty corpus", embedder.calls)
	}
	if len(store.replaced) != 0 {
		t.Error("store written for an empty corpus")
	}
}

func TestRun_PersistsAfterReplace(t *testing.T) {
	root := writeDocs(t, map[string]string{"a.md": "# A\n\ncontent"})
	store := &recordingStore{}
	pipeline, _ := newTestPipeline(t, root, &failEmbedder{dims: 4}, store)

	dir := t.TempDir()
	if _, err := pipeline.Run(context.Background(), dir); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.persisted) != 1 || store.persisted[0] != dir {
		t.Errorf("persisted = %v, want [%s]", store.persisted, dir)
	}
}

func TestTruncateWords(t *testing.T) {
	if got := truncateWords("one two three four", 2); got != "one two" {
		t.Errorf("truncateWords = %q", got)
	}
	if got := truncateWords("one two", 10); got != "one two" {
		t.Errorf("truncateWords short input = %q", got)
	}
	if got := truncateWords("one two", 0); got != "one two" {
		t.Errorf("truncateWords zero limit = %q", got)
	}
}
