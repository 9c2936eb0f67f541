// Package sqlite provides a SQLite-backed entity store for local projections.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"talentGraph/internal/entity"
	"talentGraph/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	kind       TEXT    NOT NULL,
	id         TEXT    NOT NULL,
	data       TEXT    NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (kind, id)
);

CREATE TABLE IF NOT EXISTS indexer_state (
	name         TEXT PRIMARY KEY,
	block_number INTEGER NOT NULL,
	log_index    INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);
`

// Store persists the entity graph in a single SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and creates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) LoadEntity(ctx context.Context, kind model.Kind, id string) ([]byte, bool, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM entities WHERE kind = ? AND id = ?`, string(kind), id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	return []byte(data), true, nil
}

// SaveEntities writes all records in one transaction.
func (s *Store) SaveEntities(ctx context.Context, records []entity.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entities (kind, id, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().UnixMilli()
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, string(rec.Kind), rec.ID, string(rec.Data), now); err != nil {
			return fmt.Errorf("upsert %s %s: %w", rec.Kind, rec.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) LoadCursor(ctx context.Context, name string) (model.Position, bool, error) {
	if name == "" {
		return model.Position{}, false, fmt.Errorf("state name required")
	}
	var block, logIndex int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT block_number, log_index FROM indexer_state WHERE name = ?`, name).Scan(&block, &logIndex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Position{}, false, nil
		}
		return model.Position{}, false, err
	}
	return model.Position{BlockNumber: uint64(block), LogIndex: uint64(logIndex)}, true, nil
}

func (s *Store) SaveCursor(ctx context.Context, name string, pos model.Position) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO indexer_state (name, block_number, log_index, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			block_number = excluded.block_number,
			log_index = excluded.log_index,
			updated_at = excluded.updated_at`,
		name, int64(pos.BlockNumber), int64(pos.LogIndex), time.Now().UTC().UnixMilli())
	return err
}
