package schema

// SeriesPoint is one day of the burndown. Remaining is nil only for a gap in lenient mode.
type SeriesPoint struct {
	Date      Date     `json:"date"`
	Remaining *float64 `json:"remaining"`
}

// BurndownSeries is the ascending, contiguous remaining-points series.
type BurndownSeries []SeriesPoint

// Dates returns the dates of the series in order.
func (s BurndownSeries) Dates() []Date {
	dates := make([]Date, len(s))
	for i, p := range s {
		dates[i] = p.Date
	}
	return dates
}

// Values returns the remaining values in order.
func (s BurndownSeries) Values() []*float64 {
	values := make([]*float64, len(s))
	for i, p := range s {
		values[i] = p.Remaining
	}
	return values
}

// Gaps returns the dates with no data.
func (s BurndownSeries) Gaps() []Date {
	var gaps []Date
	for _, p := range s {
		if p.Remaining == nil {
			gaps = append(gaps, p.Date)
		}
	}
	return gaps
}

// GuidelinePoint is one day of the ideal burndown.
type GuidelinePoint struct {
	Date  Date    `json:"date"`
	Ideal float64 `json:"ideal"`
}

// GuidelineSeries is aligned 1:1 with the full sprint date range.
type GuidelineSeries []GuidelinePoint

// Values returns the ideal values in order.
func (g GuidelineSeries) Values() []float64 {
	values := make([]float64, len(g))
	for i, p := range g {
		values[i] = p.Ideal
	}
	return values
}

// SeriesRow is one line of the tabular series output.
type SeriesRow struct {
	Date      Date       `json:"date"`
	Label     string     `json:"label"`
	Remaining *float64   `json:"remaining"`
	Guideline float64    `json:"guideline"`
	Status    PaceStatus `json:"status"`
}

// SeriesReport is the read-only view of a sprint used by the series command and MCP tools.
type SeriesReport struct {
	AsOf   Date           `json:"as_of"`
	Sprint SprintSnapshot `json:"sprint"`
	Rows   []SeriesRow    `json:"rows"`
}
