package query

import "strings"

// BuildContext greedily concatenates document contents in the given
// (similarity) order, separated by a blank line, until adding the next
// document would exceed wordBudget. Documents are included whole or not at
// all: one that does not fit ends assembly, even if it is the first.
// "Tokens" are approximated by whitespace-delimited word count; a real
// tokenizer can replace the approximation behind the same contract.
func BuildContext(contents []string, wordBudget int) string {
	var parts []string
	used := 0

	for _, content := range contents {
		words := len(strings.Fields(content))
		if words == 0 {
			// An empty document contributes nothing but still consumes
			// its slot in the ranking.
			continue
		}
		if used+words > wordBudget {
			break
		}
		parts = append(parts, content)
		used += words
	}

	return strings.Join(parts, "\n\n")
}
