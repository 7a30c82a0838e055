package query

import (
	"strings"
	"testing"
)

// words builds a test document with exactly n whitespace-delimited words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}

func TestBuildContext_Empty(t *testing.T) {
	if got := BuildContext(nil, 100); got != "" {
		t.Errorf("BuildContext(nil) = %q, want empty", got)
	}
	if got := BuildContext([]string{}, 0); got != "" {
		t.Errorf("BuildContext(empty, 0) = %q, want empty", got)
	}
}

func TestBuildContext_FirstDocumentOverBudget(t *testing.T) {
	docs := []string{words(300), words(300)}

	if got := BuildContext(docs, 250); got != "" {
		t.Errorf("expected empty context when the first document exceeds the budget, got %d chars", len(got))
	}
}

func TestBuildContext_WholeDocumentsOnly(t *testing.T) {
	docA := words(100)
	docB := words(100)

	got := BuildContext([]string{docA, docB}, 150)
	if got != docA {
		t.Errorf("expected only the first document, got %d words", len(strings.Fields(got)))
	}
}

func TestBuildContext_ExactBudget(t *testing.T) {
	docA := words(100)
	docB := words(50)

	got := BuildContext([]string{docA, docB}, 150)
	want := docA + "\n\n" + docB
	if got != want {
		t.Errorf("expected both documents at exact budget, got %d words", len(strings.Fields(got)))
	}
}

func TestBuildContext_EmptyDocumentConsumesSlot(t *testing.T) {
	docB := words(10)

	got := BuildContext([]string{"", docB}, 100)
	if got != docB {
		t.Errorf("expected the empty document to contribute nothing, got %q", got)
	}
	if strings.HasPrefix(got, "\n") {
		t.Error("empty document must not leave a leading separator")
	}
}

func TestBuildContext_SeparatedByBlankLine(t *testing.T) {
	got := BuildContext([]string{"alpha beta", "gamma delta"}, 10)
	if got != "alpha beta\n\ngamma delta" {
		t.Errorf("unexpected separator: %q", got)
	}
}
