// Package parquet provides data structures and functions for exporting burndown
// snapshots and series to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/sprintchart/burndown/schema"
)

// SnapshotRow is one stored daily snapshot.
type SnapshotRow struct {
	// CaptureDate is the YYYYMMDD store key
	CaptureDate string `parquet:"capture_date,snappy"`

	SprintID   int64   `parquet:"sprint_id,snappy"`
	SprintName string  `parquet:"sprint_name,snappy"`
	GoalPoints float64 `parquet:"goal_points,snappy"`
	StartDate  string  `parquet:"start_date,snappy"`
	EndDate    string  `parquet:"end_date,snappy"`

	CompletedPoints float64 `parquet:"completed_points,snappy"`
	RemainingPoints float64 `parquet:"remaining_points,snappy"`
	TotalPoints     float64 `parquet:"total_points,snappy"`

	// CapturedAt is when the tracker was read (stored as TIMESTAMP with nanosecond precision)
	CapturedAt time.Time `parquet:"captured_at,snappy"`
}

// SeriesRow is one day of an assembled burndown joined with its guideline.
type SeriesRow struct {
	Date string `parquet:"date,snappy"`

	// Remaining is nil for days with no snapshot and for days not yet reached
	Remaining *float64 `parquet:"remaining,optional,snappy"`

	Guideline float64 `parquet:"guideline,snappy"`
	Status    string  `parquet:"status,snappy"`
}

// ConvertSnapshots maps stored snapshots to Parquet rows.
func ConvertSnapshots(snapshots []schema.SprintSnapshot) []SnapshotRow {
	rows := make([]SnapshotRow, len(snapshots))
	for i, s := range snapshots {
		rows[i] = SnapshotRow{
			CaptureDate:     s.CaptureDate.Key(),
			SprintID:        s.SprintID,
			SprintName:      s.Name,
			GoalPoints:      s.GoalPoints,
			StartDate:       s.StartDate.Key(),
			EndDate:         s.EndDate.Key(),
			CompletedPoints: s.CompletedPointsSum,
			RemainingPoints: s.RemainingPointsSum,
			TotalPoints:     s.TotalPointsSum,
			CapturedAt:      s.CapturedAt,
		}
	}
	return rows
}

// ConvertSeriesRows maps series table rows to Parquet rows.
func ConvertSeriesRows(series []schema.SeriesRow) []SeriesRow {
	rows := make([]SeriesRow, len(series))
	for i, r := range series {
		rows[i] = SeriesRow{
			Date:      r.Date.Key(),
			Remaining: r.Remaining,
			Guideline: r.Guideline,
			Status:    string(r.Status),
		}
	}
	return rows
}

// WriteSnapshotsParquet writes snapshot rows to a Parquet file.
func WriteSnapshotsParquet(data []SnapshotRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeriesParquet writes series rows to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using the schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
