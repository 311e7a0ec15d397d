package store

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]map[string]Record)}
}

func (m *MemoryStore) Save(_ context.Context, rec *Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byID, ok := m.users[rec.UserID]
	if !ok {
		byID = make(map[string]Record)
		m.users[rec.UserID] = byID
	}
	byID[rec.ID] = *rec
	return nil
}

func (m *MemoryStore) Get(_ context.Context, userID, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.users[userID][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *MemoryStore) List(_ context.Context, userID string) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0, len(m.users[userID]))
	for _, rec := range m.users[userID] {
		out = append(out, rec)
	}
	m.mu.RUnlock()
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID][id]; !ok {
		return ErrNotFound
	}
	delete(m.users[userID], id)
	if len(m.users[userID]) == 0 {
		delete(m.users, userID)
	}
	return nil
}
