package schema

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

// ArtifactFilename returns the chart file name for a report date.
func ArtifactFilename(d Date) string {
	return d.Key() + ArtifactFileSuffix
}

// SnapshotFilename returns the snapshot file name for a capture date.
func SnapshotFilename(d Date) string {
	return d.Key() + SnapshotFileSuffix
}

// GetPaceStatus compares a day's remaining points against the guideline.
func GetPaceStatus(remaining *float64, guideline float64) PaceStatus {
	if remaining == nil {
		return NoDataStatus
	}
	if *remaining <= guideline {
		return OnTrackStatus
	}
	return BehindStatus
}

// BuildSeriesRows joins the burndown and guideline by date. Guideline days past
// the end of the burndown are reported as future.
func BuildSeriesRows(burndown BurndownSeries, guideline GuidelineSeries) []SeriesRow {
	byDate := make(map[string]*float64, len(burndown))
	for _, p := range burndown {
		byDate[p.Date.Key()] = p.Remaining
	}

	rows := make([]SeriesRow, 0, len(guideline))
	for _, g := range guideline {
		row := SeriesRow{
			Date:      g.Date,
			Label:     g.Date.Label(),
			Guideline: g.Ideal,
		}
		remaining, seen := byDate[g.Date.Key()]
		switch {
		case !seen:
			row.Status = FutureStatus
		default:
			row.Remaining = remaining
			row.Status = GetPaceStatus(remaining, g.Ideal)
		}
		rows = append(rows, row)
	}
	return rows
}
