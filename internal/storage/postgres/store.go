package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	kind       TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (kind, id)
);

CREATE TABLE IF NOT EXISTS indexer_state (
	name         TEXT        PRIMARY KEY,
	block_number BIGINT      NOT NULL,
	log_index    BIGINT      NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store provides Postgres persistence for the entity graph.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the entity and state tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// LoadEntity returns the JSON document stored for (kind, id).
func (s *Store) LoadEntity(ctx context.Context, kind model.Kind, id string) ([]byte, bool, error) {
	var data string
	row := s.pool.QueryRow(ctx, `SELECT data::text FROM entities WHERE kind=$1 AND id=$2`, string(kind), id)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(data), true, nil
}

// SaveEntities upserts all records of one event in a single transaction.
func (s *Store) SaveEntities(ctx context.Context, records []entity.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO entities (kind, id, data, created_at, updated_at)
			VALUES ($1, $2, $3::jsonb, now(), now())
			ON CONFLICT (kind, id)
			DO UPDATE SET
				data = EXCLUDED.data,
				updated_at = now()
		`,
			string(rec.Kind),
			rec.ID,
			string(rec.Data),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// LoadCursor returns the projection cursor saved under name.
func (s *Store) LoadCursor(ctx context.Context, name string) (model.Position, bool, error) {
	if name == "" {
		return model.Position{}, false, fmt.Errorf("state name required")
	}
	var block, logIndex int64
	row := s.pool.QueryRow(ctx, `SELECT block_number, log_index FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&block, &logIndex); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Position{}, false, nil
		}
		return model.Position{}, false, err
	}
	return model.Position{BlockNumber: uint64(block), LogIndex: uint64(logIndex)}, true, nil
}

// SaveCursor upserts the projection cursor for name.
func (s *Store) SaveCursor(ctx context.Context, name string, pos model.Position) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO indexer_state (name, block_number, log_index, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name) DO UPDATE
		SET block_number = EXCLUDED.block_number, log_index = EXCLUDED.log_index, updated_at = now()
	`, name, int64(pos.BlockNumber), int64(pos.LogIndex))
	return err
}

// Count returns the number of stored entities of kind.
func (s *Store) Count(ctx context.Context, kind model.Kind) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM entities WHERE kind=$1`, string(kind)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
