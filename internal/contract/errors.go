package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sprintchart/burndown/schema"
)

// ErrSnapshotNotFound signals that no snapshot exists for a date. It is expected for gaps.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Stage names a step of the report pipeline for logging.
type Stage string

// Pipeline stages.
const (
	StageFetch    Stage = "fetch"
	StageAssemble Stage = "assemble"
	StageProject  Stage = "project"
	StageChart    Stage = "chart"
	StageRender   Stage = "render"
	StageArtifact Stage = "artifact"
	StageDeliver  Stage = "deliver"
)

// UpstreamFetchError means sprint data could not be read from the tracker.
type UpstreamFetchError struct {
	RapidViewID int64
	SprintID    int64
	Err         error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("fetch sprint %d (board %d): %v", e.SprintID, e.RapidViewID, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// StoreWriteError means a snapshot could not be persisted.
type StoreWriteError struct {
	Key string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("write snapshot %s: %v", e.Key, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreReadError means a snapshot exists but could not be read or decoded.
type StoreReadError struct {
	Key string
	Err error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("read snapshot %s: %v", e.Key, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// CaptureDateError means a report was asked to capture a day other than the current one.
type CaptureDateError struct {
	Date  schema.Date
	Today schema.Date
}

func (e *CaptureDateError) Error() string {
	return fmt.Sprintf("cannot capture snapshot for %s: only today (%s) can be captured; use series or resend for past days",
		e.Date.Key(), e.Today.Key())
}

// IncompleteHistoryError lists the dates with no snapshot in a strict assembly.
type IncompleteHistoryError struct {
	Missing []schema.Date
}

func (e *IncompleteHistoryError) Error() string {
	keys := make([]string, len(e.Missing))
	for i, d := range e.Missing {
		keys[i] = d.Key()
	}
	return fmt.Sprintf("incomplete snapshot history: missing %s", strings.Join(keys, ", "))
}

// InvalidSprintWindowError means the sprint dates cannot produce a series.
type InvalidSprintWindowError struct {
	Start  schema.Date
	End    schema.Date
	Today  schema.Date
	Reason string
}

func (e *InvalidSprintWindowError) Error() string {
	return fmt.Sprintf("invalid sprint window %s~%s (today %s): %s", e.Start.Key(), e.End.Key(), e.Today.Key(), e.Reason)
}

// ChartSpecInconsistencyError means the series do not line up with the label range.
type ChartSpecInconsistencyError struct {
	Reason string
}

func (e *ChartSpecInconsistencyError) Error() string {
	return "chart spec inconsistency: " + e.Reason
}

// RenderError means the chart could not be rasterized.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render chart: %v", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

// DeliveryError means the artifact was produced but not delivered.
type DeliveryError struct {
	Filename string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s: %v", e.Filename, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
