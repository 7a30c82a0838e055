package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run records one completed ingestion run.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Documents  int       `json:"documents"`
}

// DocumentInfo describes one cataloged corpus document.
type DocumentInfo struct {
	Identifier  string    `json:"identifier"`
	Words       int       `json:"words"`
	ContentHash string    `json:"content_hash"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// Store provides catalog operations over the corpus database.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *DB) *Store {
	return &Store{db: database}
}

// RecordRun replaces the document catalog with the given batch and records
// the run, all inside one transaction. The run mirrors the vector store's
// full-corpus replace semantics. Returns the generated run ID.
func (s *Store) RecordRun(ctx context.Context, startedAt time.Time, docs []DocumentInfo) (string, error) {
	runID := uuid.New().String()
	finishedAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return "", fmt.Errorf("clearing documents: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ingestion_runs (id, started_at, finished_at, documents)
		VALUES (?, ?, ?, ?)`,
		runID, startedAt.UTC(), finishedAt, len(docs),
	); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, doc := range docs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (identifier, run_id, words, content_hash, ingested_at)
			VALUES (?, ?, ?, ?, ?)`,
			doc.Identifier, runID, doc.Words, doc.ContentHash, finishedAt,
		); err != nil {
			return "", fmt.Errorf("inserting document %s: %w", doc.Identifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// LatestRun returns the most recently finished run, or nil if none exists.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, documents
		FROM ingestion_runs
		ORDER BY finished_at DESC
		LIMIT 1`)

	var run Run
	if err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Documents); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return &run, nil
}

// ListDocuments returns all cataloged documents ordered by identifier.
func (s *Store) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, words, content_hash, ingested_at
		FROM documents
		ORDER BY identifier`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var doc DocumentInfo
		if err := rows.Scan(&doc.Identifier, &doc.Words, &doc.ContentHash, &doc.IngestedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
