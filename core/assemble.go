package core

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// AssembleSeries persists today's snapshot and then rebuilds the series from
// sprint start through min(end, today). The write completes before any read.
func AssembleSeries(ctx context.Context, sprint schema.SprintSnapshot, store contract.SnapshotStore, today schema.Date, opts AssembleOptions) (schema.BurndownSeries, error) {
	sprint.CaptureDate = today
	if err := store.Put(ctx, sprint); err != nil {
		return nil, err
	}
	return ReconstructSeries(ctx, sprint, store, today, opts)
}

// ValidateSprintWindow rejects sprints that end before they start or have not started yet.
func ValidateSprintWindow(sprint schema.SprintSnapshot, today schema.Date) error {
	switch {
	case sprint.StartDate.IsZero() || sprint.EndDate.IsZero():
		return &contract.InvalidSprintWindowError{Start: sprint.StartDate, End: sprint.EndDate, Today: today, Reason: "sprint dates are missing"}
	case sprint.EndDate.Before(sprint.StartDate):
		return &contract.InvalidSprintWindowError{Start: sprint.StartDate, End: sprint.EndDate, Today: today, Reason: "end date is before start date"}
	case today.Before(sprint.StartDate):
		return &contract.InvalidSprintWindowError{Start: sprint.StartDate, End: sprint.EndDate, Today: today, Reason: "sprint has not started"}
	}
	return nil
}

// ReconstructSeries reads one snapshot per day from sprint start through
// min(end, today) without writing. Lookups run concurrently and land in
// their own index, so the result is ascending whatever order they finish in.
func ReconstructSeries(ctx context.Context, sprint schema.SprintSnapshot, store contract.SnapshotStore, today schema.Date, opts AssembleOptions) (schema.BurndownSeries, error) {
	if err := ValidateSprintWindow(sprint, today); err != nil {
		return nil, err
	}

	dates := schema.DateRange(sprint.StartDate, schema.MinDate(sprint.EndDate, today))
	series := make(schema.BurndownSeries, len(dates))
	logger := opts.logger()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, d := range dates {
		series[i].Date = d
		g.Go(func() error {
			snap, err := store.Get(gctx, d)
			if errors.Is(err, contract.ErrSnapshotNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if snap.SprintID != 0 && snap.SprintID != sprint.SprintID {
				logger.Warn("assemble: snapshot belongs to another sprint", "date", d.Key(), "sprint_id", sprint.SprintID, "stored_sprint_id", snap.SprintID)
				return nil
			}
			remaining := snap.RemainingPointsSum
			series[i].Remaining = &remaining
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if missing := series.Gaps(); len(missing) > 0 {
		if !opts.Lenient {
			return nil, &contract.IncompleteHistoryError{Missing: missing}
		}
		logger.Warn("assemble: filling gaps with no data", "sprint_id", sprint.SprintID, "missing", len(missing))
	}
	return series, nil
}
