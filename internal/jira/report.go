package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sprintchart/burndown/schema"
)

// SprintReport is the subset of the sprint report payload burndown reads.
type SprintReport struct {
	Contents struct {
		CompletedIssuesEstimateSum    estimateSum `json:"completedIssuesEstimateSum"`
		IssuesNotCompletedEstimateSum estimateSum `json:"issuesNotCompletedEstimateSum"`
	} `json:"contents"`
	Sprint struct {
		ID           int64      `json:"id"`
		Name         string     `json:"name"`
		Goal         flexPoints `json:"goal"`
		State        string     `json:"state"`
		ISOStartDate string     `json:"isoStartDate"`
		ISOEndDate   string     `json:"isoEndDate"`
	} `json:"sprint"`
}

type estimateSum struct {
	Value flexPoints `json:"value"`
}

// flexPoints decodes a number, a numeric string, or anything else as 0.
// Teams record the point goal in the free-text sprint goal field.
type flexPoints float64

func (p *flexPoints) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*p = flexPoints(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*p = flexPoints(v)
			return nil
		}
	}
	*p = 0
	return nil
}

// Timestamp layouts seen in isoStartDate/isoEndDate.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

func parseISODate(s string, loc *time.Location) (schema.Date, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return schema.DateOf(t.In(loc)), nil
		}
	}
	return schema.Date{}, fmt.Errorf("unrecognized sprint date %q", s)
}

// Normalize converts a sprint report into the snapshot captured at now.
// Calendar dates are taken in loc.
func Normalize(r *SprintReport, now time.Time, loc *time.Location) (schema.SprintSnapshot, error) {
	if loc == nil {
		loc = time.Local
	}
	if r.Sprint.ID == 0 {
		return schema.SprintSnapshot{}, fmt.Errorf("sprint report has no sprint")
	}
	start, err := parseISODate(r.Sprint.ISOStartDate, loc)
	if err != nil {
		return schema.SprintSnapshot{}, fmt.Errorf("start date: %w", err)
	}
	end, err := parseISODate(r.Sprint.ISOEndDate, loc)
	if err != nil {
		return schema.SprintSnapshot{}, fmt.Errorf("end date: %w", err)
	}

	completed := float64(r.Contents.CompletedIssuesEstimateSum.Value)
	remaining := float64(r.Contents.IssuesNotCompletedEstimateSum.Value)
	captured := now.In(loc)
	return schema.SprintSnapshot{
		SprintID:           r.Sprint.ID,
		Name:               r.Sprint.Name,
		GoalPoints:         float64(r.Sprint.Goal),
		StartDate:          start,
		EndDate:            end,
		CompletedPointsSum: completed,
		RemainingPointsSum: remaining,
		TotalPointsSum:     completed + remaining,
		CapturedAt:         captured,
		CaptureDate:        schema.DateOf(captured),
	}, nil
}
