// Package chart rasterizes a burndown chart spec to PNG with go-chart.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// Series colors of the delivered chart.
var (
	RemainingColor = drawing.Color{R: 255, G: 100, B: 100, A: 255}
	GuidelineColor = drawing.Color{R: 122, G: 122, B: 122, A: 255}
)

const (
	remainingStrokeWidth = 3.0
	guidelineStrokeWidth = 1.0
	axisFontSize         = 10.0
	titleFontSize        = 16.0
	singleDayPad         = 0.5
)

var guidelineDash = []float64{10, 3}

var (
	boldOnce sync.Once
	boldFont *truetype.Font
	boldErr  error
)

// axisFont returns the bold face used for axis labels and the title.
func axisFont() (*truetype.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = truetype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

// PNGRenderer renders chart specs as PNG images.
type PNGRenderer struct{}

var _ contract.ChartRenderer = PNGRenderer{} // Compile-time check

// Render draws the spec. Nil values are left out, splitting the line around gaps.
func (PNGRenderer) Render(ctx context.Context, spec schema.ChartSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &contract.RenderError{Err: err}
	}
	graph, err := buildChart(spec)
	if err != nil {
		return nil, &contract.RenderError{Err: err}
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, &contract.RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

func buildChart(spec schema.ChartSpec) (*chart.Chart, error) {
	if len(spec.Labels) == 0 {
		return nil, fmt.Errorf("chart has no labels")
	}
	font, err := axisFont()
	if err != nil {
		return nil, fmt.Errorf("load axis font: %w", err)
	}

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = schema.DefaultChartWidth
	}
	if height <= 0 {
		height = schema.DefaultChartHeight
	}

	ticks := make([]chart.Tick, 0, len(spec.Labels)+2)
	for i, l := range spec.Labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
	}
	xMin, xMax := 0.0, float64(len(spec.Labels)-1)
	if len(spec.Labels) == 1 {
		// go-chart takes the x range from the ticks and rejects a zero-width range.
		xMin, xMax = -singleDayPad, singleDayPad
		ticks = append([]chart.Tick{{Value: xMin}}, append(ticks, chart.Tick{Value: xMax})...)
	}

	remaining := segments(spec.Remaining, strokeStyle(spec.Remaining.Style, RemainingColor, remainingStrokeWidth))
	guideline := segments(spec.Guideline, strokeStyle(spec.Guideline.Style, GuidelineColor, guidelineStrokeWidth))
	if len(spec.Labels) == 1 {
		remaining = spanSingleDay(remaining)
		guideline = spanSingleDay(guideline)
	}
	series := append(remaining, guideline...)
	if len(series) == 0 {
		return nil, fmt.Errorf("chart has no data points")
	}

	axisStyle := chart.Style{Font: font, FontSize: axisFontSize}
	graph := &chart.Chart{
		Title:      spec.Title,
		TitleStyle: chart.Style{Font: font, FontSize: titleFontSize},
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Style: axisStyle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: 0, Max: yMax(spec)},
		},
		Series: series,
	}

	// Only the first segment of each line carries a name, so the legend lists each line once.
	legendSource := *graph
	legendSource.Series = nil
	for _, s := range series {
		if s.GetName() != "" {
			legendSource.Series = append(legendSource.Series, s)
		}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&legendSource)}
	return graph, nil
}

func strokeStyle(style schema.LineStyle, color drawing.Color, width float64) chart.Style {
	s := chart.Style{StrokeColor: color, StrokeWidth: width}
	if style == schema.DashedLine {
		s.StrokeDashArray = guidelineDash
	}
	return s
}

// segments splits a series into contiguous runs of non-nil values.
func segments(cs schema.ChartSeries, style chart.Style) []chart.Series {
	var out []chart.Series
	var xs, ys []float64
	flush := func() {
		if len(xs) == 0 {
			return
		}
		name := ""
		if len(out) == 0 {
			name = cs.Name
		}
		segStyle := style
		if len(xs) == 1 {
			// An isolated day has no line to draw, so mark it with a dot.
			segStyle.DotColor = style.StrokeColor
			segStyle.DotWidth = style.StrokeWidth * 2
		}
		out = append(out, chart.ContinuousSeries{Name: name, Style: segStyle, XValues: xs, YValues: ys})
		xs, ys = nil, nil
	}
	for i, v := range cs.Values {
		if v == nil {
			flush()
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *v)
	}
	flush()
	return out
}

// spanSingleDay stretches a one-day chart's points across the padded x range
// so each series draws as a flat line.
func spanSingleDay(series []chart.Series) []chart.Series {
	out := make([]chart.Series, len(series))
	for i, s := range series {
		cs, ok := s.(chart.ContinuousSeries)
		if !ok || len(cs.YValues) != 1 {
			out[i] = s
			continue
		}
		y := cs.YValues[0]
		cs.XValues = []float64{-singleDayPad, singleDayPad}
		cs.YValues = []float64{y, y}
		cs.Style.DotWidth = 0
		out[i] = cs
	}
	return out
}

// yMax leaves headroom above the largest value and never collapses to zero.
func yMax(spec schema.ChartSpec) float64 {
	maxV := 0.0
	for _, cs := range []schema.ChartSeries{spec.Remaining, spec.Guideline} {
		for _, v := range cs.Values {
			if v != nil && *v > maxV {
				maxV = *v
			}
		}
	}
	return math.Ceil(maxV) + math.Max(1, math.Ceil(maxV/10))
}
