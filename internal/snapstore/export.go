package snapstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/parquet"
	"github.com/sprintchart/burndown/schema"
)

// ReadAll loads every stored snapshot in key order.
func ReadAll(ctx context.Context, store contract.SnapshotStore) ([]schema.SprintSnapshot, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]schema.SprintSnapshot, 0, len(keys))
	for _, key := range keys {
		d, err := schema.ParseDate(key)
		if err != nil {
			return nil, &contract.StoreReadError{Key: key, Err: err}
		}
		s, err := store.Get(ctx, d)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

// ExecuteSnapshotExport writes every stored snapshot to a Parquet file.
func ExecuteSnapshotExport(ctx context.Context, store contract.SnapshotStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalEntries == 0 {
		return errors.New("no snapshots found to export")
	}
	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)

	snapshots, err := ReadAll(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to read snapshots: %w", err)
	}

	rows := parquet.ConvertSnapshots(snapshots)
	if err := parquet.WriteSnapshotsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d snapshots (%s~%s) to: %s\n", len(rows), status.FirstKey, status.LastKey, outputFile)
	return nil
}
