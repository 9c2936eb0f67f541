package entity

import (
	"context"
	"sort"
	"sync"

	"talentGraph/internal/model"
)

// MemoryStore keeps entities in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[recordKey][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[recordKey][]byte)}
}

func (m *MemoryStore) LoadEntity(_ context.Context, kind model.Kind, id string) ([]byte, bool, error) {
	m.mu.RLock()
	data, ok := m.data[recordKey{kind: kind, id: id}]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *MemoryStore) SaveEntities(_ context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range records {
		data := make([]byte, len(record.Data))
		copy(data, record.Data)
		m.data[recordKey{kind: record.Kind, id: record.ID}] = data
	}
	return nil
}

// Snapshot returns every stored record in (kind, id) order.
func (m *MemoryStore) Snapshot() []Record {
	m.mu.RLock()
	records := make([]Record, 0, len(m.data))
	for key, data := range m.data {
		records = append(records, Record{Kind: key.kind, ID: key.id, Data: data})
	}
	m.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].Kind != records[j].Kind {
			return records[i].Kind < records[j].Kind
		}
		return records[i].ID < records[j].ID
	})
	return records
}

// Len returns the number of stored entities.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
