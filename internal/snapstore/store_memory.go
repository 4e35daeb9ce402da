package snapstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// MemoryStore keeps encoded envelopes in a map. Used by tests and dry runs.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string][]byte
	updated time.Time
}

var _ contract.SnapshotStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Put implements the SnapshotStore interface.
func (s *MemoryStore) Put(_ context.Context, snapshot schema.SprintSnapshot) error {
	key := snapshot.CaptureDate.Key()
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return &contract.StoreWriteError{Key: key, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	s.updated = time.Now()
	return nil
}

// Get implements the SnapshotStore interface.
func (s *MemoryStore) Get(_ context.Context, date schema.Date) (schema.SprintSnapshot, error) {
	key := date.Key()
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return schema.SprintSnapshot{}, notFound(key)
	}
	return decodeSnapshot(key, data)
}

// Keys implements the SnapshotStore interface.
func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetStatus implements the SnapshotStore interface.
func (s *MemoryStore) GetStatus() (schema.StoreStatus, error) {
	keys, _ := s.Keys(context.Background())

	s.mu.RLock()
	defer s.mu.RUnlock()
	status := schema.StoreStatus{
		Backend:        string(schema.MemoryBackend),
		Connected:      true,
		Location:       "memory",
		TotalEntries:   len(keys),
		LastUpdateTime: s.updated,
	}
	for _, v := range s.data {
		status.SizeBytes += int64(len(v))
	}
	if len(keys) > 0 {
		status.FirstKey = keys[0]
		status.LastKey = keys[len(keys)-1]
	}
	return status, nil
}

// Close implements the SnapshotStore interface.
func (s *MemoryStore) Close() error { return nil }
