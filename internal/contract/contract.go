// Package contract provides interfaces and shared utilities for burndown's internal architecture.
package contract

import (
	"context"

	"github.com/sprintchart/burndown/schema"
)

// SnapshotStore persists one sprint snapshot per capture date.
// Keys are YYYYMMDD so lexicographic order equals chronological order.
type SnapshotStore interface {
	// Put stores the snapshot under its CaptureDate, replacing any earlier capture for that date.
	Put(ctx context.Context, snapshot schema.SprintSnapshot) error

	// Get returns the snapshot captured on date, or an error wrapping ErrSnapshotNotFound.
	Get(ctx context.Context, date schema.Date) (schema.SprintSnapshot, error)

	// Keys returns every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close releases the underlying resources.
	Close() error
}

// SprintFetcher reads today's sprint metrics from the upstream tracker.
type SprintFetcher interface {
	FetchToday(ctx context.Context, rapidViewID, sprintID int64) (schema.SprintSnapshot, error)
}

// ChartRenderer rasterizes a chart spec into an image.
type ChartRenderer interface {
	Render(ctx context.Context, spec schema.ChartSpec) ([]byte, error)
}

// Deliverer hands a rendered artifact to a notification channel.
type Deliverer interface {
	Deliver(ctx context.Context, artifact schema.Artifact) error
}
