package vectordb

import "time"

// Document is the persisted unit of the corpus: an identifier unique per
// source file, the rendered content, and the embedding computed from that
// content at ingestion time. Content and embedding are written together
// and only ever replaced together.
type Document struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  DocumentMetadata
}

// DocumentMetadata holds structured information about a document.
type DocumentMetadata struct {
	ContentHash string
	Words       int
	IngestedAt  time.Time
}

// SearchResult pairs a document with its similarity to the query vector.
type SearchResult struct {
	Document   Document
	Similarity float32
}
