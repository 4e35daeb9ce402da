package core

import (
	"fmt"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// BuildChartSpec lays both series over the full sprint range. Days past the
// end of the burndown are nil.
func BuildChartSpec(burndown schema.BurndownSeries, guideline schema.GuidelineSeries, sprint schema.SprintSnapshot) (schema.ChartSpec, error) {
	dates := schema.DateRange(sprint.StartDate, sprint.EndDate)
	inconsistent := func(format string, args ...any) (schema.ChartSpec, error) {
		return schema.ChartSpec{}, &contract.ChartSpecInconsistencyError{Reason: fmt.Sprintf(format, args...)}
	}

	if len(dates) == 0 {
		return inconsistent("sprint %s~%s has no days", sprint.StartDate.Key(), sprint.EndDate.Key())
	}
	if len(burndown) > len(dates) {
		return inconsistent("burndown has %d points but the sprint has %d days", len(burndown), len(dates))
	}
	if len(guideline) != len(dates) {
		return inconsistent("guideline has %d points but the sprint has %d days", len(guideline), len(dates))
	}

	labels := make([]string, len(dates))
	remaining := make([]*float64, len(dates))
	ideal := make([]*float64, len(dates))
	for i, d := range dates {
		labels[i] = d.Label()
		if !guideline[i].Date.Equal(d) {
			return inconsistent("guideline point %d is %s, expected %s", i, guideline[i].Date.Key(), d.Key())
		}
		ideal[i] = schema.FloatPtr(guideline[i].Ideal)
		if i < len(burndown) {
			if !burndown[i].Date.Equal(d) {
				return inconsistent("burndown point %d is %s, expected %s", i, burndown[i].Date.Key(), d.Key())
			}
			remaining[i] = burndown[i].Remaining
		}
	}

	return schema.ChartSpec{
		Title:     chartTitle(sprint),
		Labels:    labels,
		Remaining: schema.ChartSeries{Name: schema.RemainingSeriesName, Values: remaining, Style: schema.SolidLine},
		Guideline: schema.ChartSeries{Name: schema.GuidelineSeriesName, Values: ideal, Style: schema.DashedLine},
		Width:     schema.DefaultChartWidth,
		Height:    schema.DefaultChartHeight,
	}, nil
}
