// Package schema has the models shared by every part of burndown: sprint
// snapshots, the derived series, chart specs and store status.
package schema

import "time"

// SprintSnapshot is a point-in-time summary of one sprint, captured once per day.
type SprintSnapshot struct {
	SprintID           int64     `json:"id"`
	Name               string    `json:"name"`
	GoalPoints         float64   `json:"goal"`
	StartDate          Date      `json:"startDate"`
	EndDate            Date      `json:"endDate"`
	CompletedPointsSum float64   `json:"completedIssuesPointSum"`
	RemainingPointsSum float64   `json:"notCompletedIssuesPointSum"`
	TotalPointsSum     float64   `json:"issuesPointSum"` // Completed + remaining
	CapturedAt         time.Time `json:"capturedAt"`
	CaptureDate        Date      `json:"captureDate"` // Partition key, one snapshot per date
}

// DurationDays returns the number of intervals between start and end dates.
func (s SprintSnapshot) DurationDays() int {
	return s.EndDate.DaysSince(s.StartDate)
}

// Artifact is a rendered chart ready to be handed to a delivery channel.
type Artifact struct {
	Date     Date
	Filename string
	Title    string
	Path     string // Durable location of the artifact on disk
	Data     []byte
}

// ReportResult summarizes one pipeline invocation.
type ReportResult struct {
	Date      Date            `json:"date"`
	Sprint    SprintSnapshot  `json:"sprint"`
	Burndown  BurndownSeries  `json:"burndown"`
	Guideline GuidelineSeries `json:"guideline"`
	Artifact  string          `json:"artifact"`
	Delivered bool            `json:"delivered"`
}
