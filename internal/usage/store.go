// README: Persistence for extraction usage accounting.
package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles extraction_usage persistence. One row is written per
// completed extraction; results themselves are never persisted.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// RecordExtraction appends one usage row. Implements extraction.UsageRecorder.
func (s *Store) RecordExtraction(ctx context.Context, sessionID, model string, fallback bool, processingMs int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO extraction_usage (session_id, model, fallback, processing_ms, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, model, fallback, processingMs, time.Now().UTC())
	return err
}

// CountSince returns how many extractions ran after the cutoff, split by
// whether they fell back to pattern matching. Used by the stats endpoint.
func (s *Store) CountSince(ctx context.Context, cutoff time.Time) (llm int64, fallback int64, err error) {
	err = s.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE NOT fallback),
			COUNT(*) FILTER (WHERE fallback)
		FROM extraction_usage WHERE created_at >= $1
	`, cutoff).Scan(&llm, &fallback)
	return llm, fallback, err
}
