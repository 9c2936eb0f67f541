package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"talentGraph/internal/model"
)

type recordKey struct {
	kind model.Kind
	id   string
}

// Session buffers the writes of one event. Nothing reaches the store until Commit,
// so an event that fails part way leaves previously committed state untouched.
type Session struct {
	store   Store
	pending map[recordKey][]byte
	created map[recordKey]struct{}
}

// NewSession opens a unit of work over store.
func NewSession(store Store) *Session {
	return &Session{
		store:   store,
		pending: make(map[recordKey][]byte),
		created: make(map[recordKey]struct{}),
	}
}

// Load decodes the entity (kind, id) into out. Pending writes win over the store.
func (s *Session) Load(ctx context.Context, kind model.Kind, id string, out interface{}) (bool, error) {
	key := recordKey{kind: kind, id: id}
	data, ok := s.pending[key]
	if !ok {
		var err error
		data, ok, err = s.store.LoadEntity(ctx, kind, id)
		if err != nil {
			return false, fmt.Errorf("load %s %s: %w", kind, id, err)
		}
		if !ok {
			return false, nil
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	return true, nil
}

// Save stages the entity for commit.
func (s *Session) Save(kind model.Kind, id string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, id, err)
	}
	s.pending[recordKey{kind: kind, id: id}] = data
	return nil
}

func (s *Session) markCreated(kind model.Kind, id string) {
	s.created[recordKey{kind: kind, id: id}] = struct{}{}
}

// Created returns the kinds of entities first created in this session.
func (s *Session) Created() []model.Kind {
	kinds := make([]model.Kind, 0, len(s.created))
	for key := range s.created {
		kinds = append(kinds, key.kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Dirty reports whether the session has staged writes.
func (s *Session) Dirty() bool {
	return len(s.pending) > 0
}

// Records returns the staged writes in (kind, id) order.
func (s *Session) Records() []Record {
	records := make([]Record, 0, len(s.pending))
	for key, data := range s.pending {
		records = append(records, Record{Kind: key.kind, ID: key.id, Data: data})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Kind != records[j].Kind {
			return records[i].Kind < records[j].Kind
		}
		return records[i].ID < records[j].ID
	})
	return records
}

// Commit writes all staged entities to the store.
func (s *Session) Commit(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.store.SaveEntities(ctx, s.Records()); err != nil {
		return fmt.Errorf("commit entities: %w", err)
	}
	s.pending = make(map[recordKey][]byte)
	return nil
}
