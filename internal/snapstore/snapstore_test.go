package snapstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

func testSnapshot(d schema.Date, remaining float64) schema.SprintSnapshot {
	return schema.SprintSnapshot{
		SprintID:           7,
		Name:               "Sprint 7",
		GoalPoints:         20,
		StartDate:          schema.NewDate(2024, time.January, 1),
		EndDate:            schema.NewDate(2024, time.January, 10),
		CompletedPointsSum: 20 - remaining,
		RemainingPointsSum: remaining,
		TotalPointsSum:     20,
		CapturedAt:         d.Time(time.UTC).Add(18 * time.Hour),
		CaptureDate:        d,
	}
}

// storesUnderTest returns every backend that can run without external services.
func storesUnderTest(t *testing.T) map[string]contract.SnapshotStore {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := NewFileStore(filepath.Join(dir, "files"))
	require.NoError(t, err)

	sqlStore, err := NewSQLStore(snapshotTable, schema.SQLiteBackend, filepath.Join(dir, "snapshots.db"))
	require.NoError(t, err)

	stores := map[string]contract.SnapshotStore{
		"file":   fileStore,
		"memory": NewMemoryStore(),
		"sqlite": sqlStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	d := schema.NewDate(2024, time.January, 3)

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			want := testSnapshot(d, 14)
			require.NoError(t, store.Put(ctx, want))

			got, err := store.Get(ctx, d)
			require.NoError(t, err)
			assert.Equal(t, want.SprintID, got.SprintID)
			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.StartDate, got.StartDate)
			assert.Equal(t, want.EndDate, got.EndDate)
			assert.Equal(t, want.CaptureDate, got.CaptureDate)
			assert.Equal(t, 14.0, got.RemainingPointsSum)
			assert.WithinDuration(t, want.CapturedAt, got.CapturedAt, time.Second)
		})
	}
}

func TestStorePutReplacesSameDate(t *testing.T) {
	ctx := context.Background()
	d := schema.NewDate(2024, time.January, 4)

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, testSnapshot(d, 12)))
			require.NoError(t, store.Put(ctx, testSnapshot(d, 9)))

			got, err := store.Get(ctx, d)
			require.NoError(t, err)
			assert.Equal(t, 9.0, got.RemainingPointsSum)

			keys, err := store.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"20240104"}, keys)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, schema.NewDate(2030, time.May, 5))
			require.Error(t, err)
			assert.ErrorIs(t, err, contract.ErrSnapshotNotFound)
		})
	}
}

func TestStoreKeysOrderedAndStatus(t *testing.T) {
	ctx := context.Background()
	dates := []schema.Date{
		schema.NewDate(2024, time.January, 5),
		schema.NewDate(2023, time.December, 31),
		schema.NewDate(2024, time.January, 2),
	}

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			for i, d := range dates {
				require.NoError(t, store.Put(ctx, testSnapshot(d, float64(10-i))))
			}
			keys, err := store.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"20231231", "20240102", "20240105"}, keys)

			status, err := store.GetStatus()
			require.NoError(t, err)
			assert.True(t, status.Connected)
			assert.Equal(t, 3, status.TotalEntries)
			assert.Equal(t, "20231231", status.FirstKey)
			assert.Equal(t, "20240105", status.LastKey)
			assert.Greater(t, status.SizeBytes, int64(0))

			all, err := ReadAll(ctx, store)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, dates[1], all[0].CaptureDate)
		})
	}
}

func TestStorePutWithoutCaptureDate(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Put(ctx, schema.SprintSnapshot{SprintID: 1})
			var writeErr *contract.StoreWriteError
			assert.ErrorAs(t, err, &writeErr)
		})
	}
}

func TestFileStoreEnvelopeFormat(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	d := schema.NewDate(2024, time.January, 3)
	require.NoError(t, store.Put(context.Background(), testSnapshot(d, 14)))

	data, err := os.ReadFile(filepath.Join(dir, "20240103_sprint_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"code": 0`)
	assert.Contains(t, string(data), `"msg": "success"`)
	assert.Contains(t, string(data), `"updateDate": "2024/01/03 18:00:00"`)
	assert.Contains(t, string(data), `"notCompletedIssuesPointSum": 14`)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreRejectsFailedEnvelope(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	raw := `{"code": 1, "data": {}, "updateDate": "", "msg": "upstream error"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20240103_sprint_data.json"), []byte(raw), 0o644))

	_, err = store.Get(context.Background(), schema.NewDate(2024, time.January, 3))
	var readErr *contract.StoreReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "20240103", readErr.Key)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20240103_sprint_data.json"), []byte("{not json"), 0o644))

	_, err = store.Get(context.Background(), schema.NewDate(2024, time.January, 3))
	var readErr *contract.StoreReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestFileStoreKeysIgnoreForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	for _, name := range []string{"20240103_burn_down_chart.png", "notes_sprint_data.json", "2024-01-03_sprint_data.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, store.Put(context.Background(), testSnapshot(schema.NewDate(2024, time.January, 3), 1)))

	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"20240103"}, keys)
}

func TestNewSnapshotStore(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSnapshotStore(schema.FileBackend, "", dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = NewSnapshotStore(schema.MemoryBackend, "", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewSnapshotStore("redis", "", "")
	assert.Error(t, err)
}

func TestClearStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fileStore, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fileStore.Put(ctx, testSnapshot(schema.NewDate(2024, time.January, 3), 1)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20240103_burn_down_chart.png"), []byte("png"), 0o644))

	require.NoError(t, ClearStore(schema.FileBackend, "", dir))
	keys, err := fileStore.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	_, err = os.Stat(filepath.Join(dir, "20240103_burn_down_chart.png"))
	assert.NoError(t, err, "artifacts are not snapshots")

	dbPath := filepath.Join(dir, "snapshots.db")
	sqlStore, err := NewSQLStore(snapshotTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, sqlStore.Close())
	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, ClearStore("redis", "", ""))
}

func TestMigrateStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	var out bytes.Buffer

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "to version 2")

	out.Reset()
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "No migration needed")

	// The migrated schema is the one the store uses
	store, err := NewSQLStore(snapshotTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), testSnapshot(schema.NewDate(2024, time.January, 3), 1)))
	require.NoError(t, store.Close())

	out.Reset()
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0, &out))
	assert.Contains(t, out.String(), "to version 0")

	assert.Error(t, MigrateStore(schema.FileBackend, "", -1, &out))
}

func TestExecuteSnapshotExport(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	var out bytes.Buffer

	outputFile := filepath.Join(t.TempDir(), "snapshots.parquet")
	assert.Error(t, ExecuteSnapshotExport(ctx, store, outputFile, &out), "empty store")
	assert.Error(t, ExecuteSnapshotExport(ctx, store, "", &out), "missing output file")

	require.NoError(t, store.Put(ctx, testSnapshot(schema.NewDate(2024, time.January, 1), 20)))
	require.NoError(t, store.Put(ctx, testSnapshot(schema.NewDate(2024, time.January, 2), 18)))
	require.NoError(t, ExecuteSnapshotExport(ctx, store, outputFile, &out))
	assert.Contains(t, out.String(), "Exported 2 snapshots (20240101~20240102)")

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPrintStoreStatus(t *testing.T) {
	var out bytes.Buffer
	PrintStoreStatus(&out, schema.StoreStatus{Backend: "file", Connected: true, Location: "output", TotalEntries: 2, FirstKey: "20240101", LastKey: "20240102"})
	assert.Contains(t, out.String(), "Store Backend: file")
	assert.Contains(t, out.String(), "First Snapshot: 20240101")

	out.Reset()
	PrintStoreStatus(&out, schema.StoreStatus{Backend: "mysql"})
	assert.NotContains(t, out.String(), "Location")
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("burndown_snapshots"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("snapshots; DROP TABLE x"))
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
}
