//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/snapstore"
	"github.com/sprintchart/burndown/schema"
)

func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "burndown",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return fmt.Sprintf("root:secret123@tcp(%s:%s)/burndown?parseTime=true", host, port.Port())
}

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
}

func day(d int) schema.Date {
	return schema.NewDate(2024, time.January, d)
}

// exerciseSQLStore writes, overwrites and reads snapshots through a real database.
func exerciseSQLStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	ctx := context.Background()

	store, err := snapstore.NewSnapshotStore(backend, connStr, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	for i, remaining := range []float64{20, 17, 15} {
		require.NoError(t, store.Put(ctx, schema.SprintSnapshot{
			SprintID:           9,
			Name:               "Sprint 9",
			GoalPoints:         20,
			StartDate:          day(1),
			EndDate:            day(10),
			CompletedPointsSum: 20 - remaining,
			RemainingPointsSum: remaining,
			TotalPointsSum:     20,
			CapturedAt:         time.Date(2024, time.January, i+1, 18, 0, 0, 0, time.UTC),
			CaptureDate:        day(i + 1),
		}))
	}

	// Same-day re-capture overwrites
	again, err := store.Get(ctx, day(3))
	require.NoError(t, err)
	again.RemainingPointsSum = 14
	require.NoError(t, store.Put(ctx, again))

	got, err := store.Get(ctx, day(3))
	require.NoError(t, err)
	assert.InDelta(t, 14.0, got.RemainingPointsSum, 0.001)
	assert.Equal(t, day(10), got.EndDate)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240101", "20240102", "20240103"}, keys)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 3, status.TotalEntries)
	assert.Equal(t, "20240101", status.FirstKey)
	assert.Equal(t, "20240103", status.LastKey)

	_, err = store.Get(ctx, day(4))
	assert.ErrorIs(t, err, contract.ErrSnapshotNotFound)
}

// TestBurndownWithMySQL tests the snapshot store and CLI with a MySQL backend.
func TestBurndownWithMySQL(t *testing.T) {
	connStr := startMySQL(t)
	env := map[string]string{
		"BURNDOWN_STORE_BACKEND":    "mysql",
		"BURNDOWN_STORE_DB_CONNECT": connStr,
	}
	dir := t.TempDir()

	_, err := runBurndown(t, dir, env, "store", "migrate")
	require.NoError(t, err)

	exerciseSQLStore(t, schema.MySQLBackend, connStr)

	out, err := runBurndown(t, dir, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Snapshots: 3")

	_, err = runBurndown(t, dir, env, "store", "clear")
	require.NoError(t, err)
}

// TestBurndownWithPostgres tests the snapshot store and CLI with a PostgreSQL backend.
func TestBurndownWithPostgres(t *testing.T) {
	connStr := startPostgres(t)
	env := map[string]string{
		"BURNDOWN_STORE_BACKEND":    "postgresql",
		"BURNDOWN_STORE_DB_CONNECT": connStr,
	}
	dir := t.TempDir()

	_, err := runBurndown(t, dir, env, "store", "migrate")
	require.NoError(t, err)

	exerciseSQLStore(t, schema.PostgreSQLBackend, connStr)

	out, err := runBurndown(t, dir, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Snapshots: 3")

	out, err = runBurndown(t, dir, env, "store", "migrate", "--target-version", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "to version 0")
}
