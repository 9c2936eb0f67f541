package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"talentGraph/internal/model"
)

// CursorStore persists the position of the last applied event.
type CursorStore interface {
	Load(ctx context.Context) (model.Position, bool, error)
	Save(ctx context.Context, pos model.Position) error
}

// FileCursorStore stores the cursor in a local JSON file.
type FileCursorStore struct {
	Path string
}

type cursorRecord struct {
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint64 `json:"log_index"`
	UpdatedAt   string `json:"updated_at"`
}

func (s *FileCursorStore) Load(ctx context.Context) (model.Position, bool, error) {
	if s == nil || s.Path == "" {
		return model.Position{}, false, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Position{}, false, nil
		}
		return model.Position{}, false, fmt.Errorf("read cursor: %w", err)
	}

	var rec cursorRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Position{}, false, fmt.Errorf("parse cursor: %w", err)
	}
	return model.Position{BlockNumber: rec.BlockNumber, LogIndex: rec.LogIndex}, true, nil
}

func (s *FileCursorStore) Save(ctx context.Context, pos model.Position) error {
	if s == nil || s.Path == "" {
		return nil
	}
	dir := filepath.Dir(s.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cursor dir: %w", err)
		}
	}

	rec := cursorRecord{
		BlockNumber: pos.BlockNumber,
		LogIndex:    pos.LogIndex,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal cursor: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cursor tmp: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("rename cursor: %w", err)
	}
	return nil
}

// CursorBackend is a database that keeps named cursors next to the entities.
type CursorBackend interface {
	LoadCursor(ctx context.Context, name string) (model.Position, bool, error)
	SaveCursor(ctx context.Context, name string, pos model.Position) error
}

// DBCursorStore stores the cursor in the entity database.
type DBCursorStore struct {
	Backend CursorBackend
	Name    string
}

func (s *DBCursorStore) Load(ctx context.Context) (model.Position, bool, error) {
	if s == nil || s.Backend == nil {
		return model.Position{}, false, nil
	}
	return s.Backend.LoadCursor(ctx, s.Name)
}

func (s *DBCursorStore) Save(ctx context.Context, pos model.Position) error {
	if s == nil || s.Backend == nil {
		return nil
	}
	return s.Backend.SaveCursor(ctx, s.Name, pos)
}
