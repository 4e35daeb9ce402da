package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// ErrNoSnapshots is returned when the store holds nothing at or before the requested date.
var ErrNoSnapshots = errors.New("no snapshots stored")

// LatestSnapshot returns the most recent snapshot captured on or before asOf.
func LatestSnapshot(ctx context.Context, store contract.SnapshotStore, asOf schema.Date) (schema.SprintSnapshot, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return schema.SprintSnapshot{}, err
	}
	for i := len(keys) - 1; i >= 0; i-- {
		if keys[i] > asOf.Key() {
			continue
		}
		d, err := schema.ParseDate(keys[i])
		if err != nil {
			return schema.SprintSnapshot{}, &contract.StoreReadError{Key: keys[i], Err: err}
		}
		return store.Get(ctx, d)
	}
	return schema.SprintSnapshot{}, fmt.Errorf("%w on or before %s", ErrNoSnapshots, asOf.Key())
}

// BuildSeriesReport rebuilds the series and guideline for the sprint of the
// latest snapshot on or before asOf, without fetching or writing.
func BuildSeriesReport(ctx context.Context, store contract.SnapshotStore, asOf schema.Date, opts AssembleOptions) (schema.SeriesReport, error) {
	sprint, err := LatestSnapshot(ctx, store, asOf)
	if err != nil {
		return schema.SeriesReport{}, err
	}
	burndown, err := ReconstructSeries(ctx, sprint, store, asOf, opts)
	if err != nil {
		return schema.SeriesReport{}, err
	}
	guideline, err := ProjectGuideline(sprint.GoalPoints, sprint.StartDate, sprint.EndDate)
	if err != nil {
		return schema.SeriesReport{}, err
	}
	return schema.SeriesReport{
		AsOf:   asOf,
		Sprint: sprint,
		Rows:   schema.BuildSeriesRows(burndown, guideline),
	}, nil
}
