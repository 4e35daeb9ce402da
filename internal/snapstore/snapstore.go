// Package snapstore persists one sprint snapshot per capture date.
package snapstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// snapshotTable is the name of the table for SQL backends.
const snapshotTable = "burndown_snapshots"

// StoreManager holds the process-wide snapshot store.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.SnapshotStore
}

// GetSnapshotStore returns the initialized store, or nil before InitStore.
func (mgr *StoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global store manager.
func InitStore(backend schema.DatabaseBackend, connStr, dir string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewSnapshotStore(backend, connStr, dir)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// NewSnapshotStore builds the store for a backend. dir is only used by the
// file backend; connStr by the SQL backends.
func NewSnapshotStore(backend schema.DatabaseBackend, connStr, dir string) (contract.SnapshotStore, error) {
	switch backend {
	case schema.FileBackend, "":
		return NewFileStore(dir)
	case schema.MemoryBackend:
		return NewMemoryStore(), nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewSQLStore(snapshotTable, backend, connStr)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be file, sqlite, mysql, postgresql, or memory", backend)
	}
}

// encodeSnapshot wraps a snapshot in its envelope and serializes it.
func encodeSnapshot(s schema.SprintSnapshot) ([]byte, error) {
	if s.CaptureDate.IsZero() {
		return nil, fmt.Errorf("snapshot has no capture date")
	}
	updated := s.CapturedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return json.MarshalIndent(schema.NewSnapshotEnvelope(s, updated), "", "  ")
}

// decodeSnapshot parses a stored envelope. Envelopes with a non-success code are rejected.
func decodeSnapshot(key string, data []byte) (schema.SprintSnapshot, error) {
	var env schema.SnapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return schema.SprintSnapshot{}, &contract.StoreReadError{Key: key, Err: err}
	}
	if !env.OK() {
		return schema.SprintSnapshot{}, &contract.StoreReadError{
			Key: key,
			Err: fmt.Errorf("envelope code %d: %s", env.Code, env.Msg),
		}
	}
	return env.Data, nil
}

// notFound wraps ErrSnapshotNotFound with the missing key.
func notFound(key string) error {
	return fmt.Errorf("%w: %s", contract.ErrSnapshotNotFound, key)
}
