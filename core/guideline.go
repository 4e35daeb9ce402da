package core

import (
	"math"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// ProjectGuideline returns the ideal linear burn from goal on start to 0 on end:
// ideal[i] = goal - floor(goal*i/totalDays). A one-day sprint yields [goal].
func ProjectGuideline(goal float64, start, end schema.Date) (schema.GuidelineSeries, error) {
	if end.Before(start) {
		return nil, &contract.InvalidSprintWindowError{Start: start, End: end, Reason: "end date is before start date"}
	}
	goal = math.Max(goal, 0)

	totalDays := end.DaysSince(start)
	if totalDays == 0 {
		return schema.GuidelineSeries{{Date: start, Ideal: goal}}, nil
	}

	guideline := make(schema.GuidelineSeries, totalDays+1)
	for i := range guideline {
		guideline[i] = schema.GuidelinePoint{
			Date:  start.AddDays(i),
			Ideal: goal - math.Floor(goal*float64(i)/float64(totalDays)),
		}
	}
	return guideline, nil
}
