package snapstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// FileStore keeps one YYYYMMDD_sprint_data.json envelope per capture date in a directory.
type FileStore struct {
	dir string
}

var _ contract.SnapshotStore = &FileStore{} // Compile-time check

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = contract.DefaultStoreDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(d schema.Date) string {
	return filepath.Join(s.dir, schema.SnapshotFilename(d))
}

// Put writes the envelope atomically so readers never observe a partial file.
func (s *FileStore) Put(_ context.Context, snapshot schema.SprintSnapshot) error {
	key := snapshot.CaptureDate.Key()
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return &contract.StoreWriteError{Key: key, Err: err}
	}
	if err := contract.WriteFileAtomic(s.path(snapshot.CaptureDate), data); err != nil {
		return &contract.StoreWriteError{Key: key, Err: err}
	}
	return nil
}

// Get reads the envelope for date.
func (s *FileStore) Get(_ context.Context, date schema.Date) (schema.SprintSnapshot, error) {
	key := date.Key()
	data, err := os.ReadFile(s.path(date))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return schema.SprintSnapshot{}, notFound(key)
	case err != nil:
		return schema.SprintSnapshot{}, &contract.StoreReadError{Key: key, Err: err}
	}
	return decodeSnapshot(key, data)
}

// Keys lists the capture dates present in the directory.
func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot directory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if k, ok := keyFromFilename(e.Name()); ok && !e.IsDir() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// keyFromFilename extracts YYYYMMDD from a snapshot file name.
func keyFromFilename(name string) (string, bool) {
	key, ok := strings.CutSuffix(name, schema.SnapshotFileSuffix)
	if !ok {
		return "", false
	}
	if _, err := schema.ParseDate(key); err != nil || len(key) != 8 {
		return "", false
	}
	return key, true
}

// GetStatus reports the number and size of snapshot files.
func (s *FileStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(schema.FileBackend),
		Connected: true,
		Location:  s.dir,
	}
	keys, err := s.Keys(context.Background())
	if err != nil {
		return status, err
	}
	status.TotalEntries = len(keys)
	if len(keys) == 0 {
		return status, nil
	}
	status.FirstKey = keys[0]
	status.LastKey = keys[len(keys)-1]

	var latest time.Time
	for _, k := range keys {
		info, err := os.Stat(filepath.Join(s.dir, k+schema.SnapshotFileSuffix))
		if err != nil {
			continue
		}
		status.SizeBytes += info.Size()
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	status.LastUpdateTime = latest
	return status, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }
