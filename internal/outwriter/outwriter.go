// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints a stored series using the configured output format.
func (ow *OutWriter) WriteSeries(report schema.SeriesReport, cfg *contract.Config) error {
	return PrintSeriesReport(report, cfg)
}

// WriteReport prints the summary of a report run using the configured output format.
func (ow *OutWriter) WriteReport(result schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintReportResult(result, cfg, duration)
}
