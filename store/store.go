// Package store persists finished catalog records.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/acervolab/catalogagent/record"
)

// MemoryStore keeps records in memory, for tests and local usage.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*record.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*record.Record)}
}

func (m *MemoryStore) SaveRecord(ctx context.Context, rec *record.Record) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	m.records[id] = rec
	m.mu.Unlock()
	return id, nil
}

// GetRecord returns a stored record by id.
func (m *MemoryStore) GetRecord(id string) (*record.Record, bool) {
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()
	return rec, ok
}
