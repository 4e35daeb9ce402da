package schema

// ChartSeries is one named line on the chart.
type ChartSeries struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"` // nil entries render as no data
	Style  LineStyle  `json:"style"`
}

// ChartSpec is a renderer-agnostic description of the burndown chart.
type ChartSpec struct {
	Title     string      `json:"title"`
	Labels    []string    `json:"labels"`
	Remaining ChartSeries `json:"remaining"`
	Guideline ChartSeries `json:"guideline"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
}
