package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// PrintReportResult outputs the summary of one report run.
func PrintReportResult(result schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesCSV(w, schema.BuildSeriesRows(result.Burndown, result.Guideline))
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

func writeReportText(w io.Writer, result schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	if err := writeSprintHeader(w, result.Sprint, result.Date); err != nil {
		return err
	}
	rows := schema.BuildSeriesRows(result.Burndown, result.Guideline)
	if err := writeSeriesTable(w, rows, cfg.UseColors); err != nil {
		return err
	}

	delivery := "delivered to " + cfg.SlackChannel
	if !result.Delivered {
		delivery = "not delivered"
	}
	_, err := fmt.Fprintf(w, "Chart %s %s. Report completed in %v with %d workers. Store backend: %s\n",
		result.Artifact, delivery, duration.Round(time.Millisecond), cfg.Workers, cfg.StoreBackend)
	return err
}
