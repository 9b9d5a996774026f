package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docuscan/cli/internal/domain"
)

// PostgresStore keeps analysis runs and generated documentation in
// Postgres, with the full payloads in jsonb columns. It owns the
// connection lifecycle; the rest of the pipeline only hands it the
// record shapes and must stay valid when a save fails.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := &PostgresStore{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id         text PRIMARY KEY,
	framework  text NOT NULL,
	source     text NOT NULL DEFAULT '',
	result     jsonb NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS documents (
	id         text PRIMARY KEY,
	run_id     text NOT NULL,
	module     text NOT NULL DEFAULT '',
	provider   text NOT NULL DEFAULT '',
	model      text NOT NULL DEFAULT '',
	source     text NOT NULL DEFAULT '',
	content    text NOT NULL,
	metadata   jsonb,
	created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS documents_run_id_idx ON documents (run_id);
CREATE INDEX IF NOT EXISTS analysis_runs_framework_idx ON analysis_runs (framework);
`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveAnalysis stores one analysis run under the given run ID.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, runID, source string, analysis *domain.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO analysis_runs (id, framework, source, result) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET framework = $2, source = $3, result = $4`,
		runID, analysis.Framework, source, payload)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}
	return nil
}

// SaveDocument stores one generated documentation record.
func (s *PostgresStore) SaveDocument(ctx context.Context, doc domain.Document) error {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal document metadata: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (id, run_id, module, provider, model, source, content, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.ID, doc.RunID, doc.Module, doc.Provider, doc.Model, doc.Source, doc.Content, metadata, doc.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// ListDocuments returns documents filtered by framework of their run
// and minimum creation time. Empty framework or zero time disable the
// respective filter.
func (s *PostgresStore) ListDocuments(ctx context.Context, framework string, since time.Time) ([]domain.Document, error) {
	rows, err := s.pool.Query(ctx, `
SELECT d.id, d.run_id, d.module, d.provider, d.model, d.source, d.content, d.metadata, d.created_at
FROM documents d
JOIN analysis_runs r ON r.id = d.run_id
WHERE ($1 = '' OR r.framework = $1)
  AND ($2::timestamptz IS NULL OR d.created_at >= $2)
ORDER BY d.created_at DESC`,
		framework, nullableTime(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var metadata []byte
		if err := rows.Scan(&doc.ID, &doc.RunID, &doc.Module, &doc.Provider, &doc.Model,
			&doc.Source, &doc.Content, &metadata, &doc.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal document metadata: %w", err)
			}
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
