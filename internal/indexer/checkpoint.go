package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"talentGraph/internal/model"
)

// Checkpointer persists the last fully fetched block.
type Checkpointer interface {
	Load(ctx context.Context) (uint64, bool, error)
	Save(ctx context.Context, lastProcessed uint64) error
}

// Checkpoint is the on-disk checkpoint document.
type Checkpoint struct {
	LastProcessedBlock uint64 `json:"last_processed_block"`
	UpdatedAt          string `json:"updated_at"`
}

// FileCheckpoint keeps the checkpoint in a JSON file. An empty path disables it.
type FileCheckpoint struct {
	Path string
}

func (c *FileCheckpoint) Load(context.Context) (uint64, bool, error) {
	if c == nil || c.Path == "" {
		return 0, false, nil
	}

	stat, err := os.Stat(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("stat checkpoint: %w", err)
	}
	if stat.IsDir() {
		return 0, false, fmt.Errorf("checkpoint path is a directory")
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return 0, false, fmt.Errorf("read checkpoint: %w", err)
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return 0, false, fmt.Errorf("parse checkpoint: %w", err)
	}
	return cp.LastProcessedBlock, true, nil
}

func (c *FileCheckpoint) Save(_ context.Context, lastProcessed uint64) error {
	if c == nil || c.Path == "" {
		return nil
	}

	dir := filepath.Dir(c.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint dir: %w", err)
		}
	}

	data, err := json.Marshal(Checkpoint{
		LastProcessedBlock: lastProcessed,
		UpdatedAt:          time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmpPath := c.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint tmp: %w", err)
	}
	if err := os.Rename(tmpPath, c.Path); err != nil {
		return fmt.Errorf("rename checkpoint: %w", err)
	}
	return nil
}

// StateBackend is a named position table, such as the entity stores' indexer_state.
type StateBackend interface {
	LoadCursor(ctx context.Context, name string) (model.Position, bool, error)
	SaveCursor(ctx context.Context, name string, pos model.Position) error
}

// StateCheckpoint stores the last fetched block in a StateBackend row.
type StateCheckpoint struct {
	Backend StateBackend
	Name    string
}

func (c *StateCheckpoint) Load(ctx context.Context) (uint64, bool, error) {
	pos, ok, err := c.Backend.LoadCursor(ctx, c.Name)
	if err != nil || !ok {
		return 0, ok, err
	}
	return pos.BlockNumber, true, nil
}

func (c *StateCheckpoint) Save(ctx context.Context, lastProcessed uint64) error {
	return c.Backend.SaveCursor(ctx, c.Name, model.Position{BlockNumber: lastProcessed})
}
