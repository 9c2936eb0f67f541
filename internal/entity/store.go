package entity

import (
	"context"

	"talentGraph/internal/model"
)

// Record is one serialized entity.
type Record struct {
	Kind model.Kind
	ID   string
	Data []byte
}

// Store is the durable key-value entity store.
type Store interface {
	// LoadEntity returns the stored bytes for (kind, id) and whether they exist.
	LoadEntity(ctx context.Context, kind model.Kind, id string) ([]byte, bool, error)
	// SaveEntities durably writes all records, atomically where the backend allows.
	SaveEntities(ctx context.Context, records []Record) error
}
