package store

import (
	"context"
	"fmt"

	"traloc/internal/tra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// TranslationStore persists flattened translation rows in PostgreSQL. Rows
// are keyed by (source_tag, identifier, lang) so several source adapters can
// feed the same table without clobbering each other.
type TranslationStore struct {
	pool *pgxpool.Pool
}

// NewTranslationStore creates a store backed by the given pool.
func NewTranslationStore(pool *pgxpool.Pool) *TranslationStore {
	return &TranslationStore{pool: pool}
}

// EnsureSchema creates the translations table if it does not exist yet.
func (s *TranslationStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS translations (
			identifier TEXT NOT NULL,
			lang       TEXT NOT NULL,
			text       TEXT NOT NULL,
			source_tag TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (source_tag, identifier, lang)
		)`)
	if err != nil {
		return fmt.Errorf("create translations table: %w", err)
	}
	return nil
}

// UpsertAll writes every present (identifier, lang) pair of the adapter's
// index, overwriting earlier rows for the same source tag.
func (s *TranslationStore) UpsertAll(ctx context.Context, a *tra.Adapter) (int, error) {
	batch := &pgx.Batch{}
	for id, bundle := range a.Translations() {
		for _, lang := range tra.Langs {
			text, ok := bundle[lang]
			if !ok {
				continue
			}
			batch.Queue(`
				INSERT INTO translations (identifier, lang, text, source_tag)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (source_tag, identifier, lang)
				DO UPDATE SET text = EXCLUDED.text, updated_at = now()`,
				id, string(lang), text, a.SourceTag())
		}
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return written, fmt.Errorf("upsert translation row: %w", err)
		}
		written++
	}

	log.Info().Int("rows", written).Str("source_tag", a.SourceTag()).Msg("Upserted translations")
	return written, nil
}
