package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/parquet"
	"github.com/sprintchart/burndown/schema"
)

const (
	pointsPrecision = 1
	missingPoints   = "-"
)

// PrintSeriesReport outputs a sprint series, dispatching based on the output format configured.
// An output file ending in .parquet is always written as Parquet.
func PrintSeriesReport(report schema.SeriesReport, cfg *contract.Config) error {
	if strings.HasSuffix(cfg.OutputFile, ".parquet") {
		if err := parquet.WriteSeriesParquet(parquet.ConvertSeriesRows(report.Rows), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesCSV(w, report.Rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeSprintHeader(w, report.Sprint, report.AsOf); err != nil {
				return err
			}
			return writeSeriesTable(w, report.Rows, cfg.UseColors)
		}, "Wrote table")
	}
	return nil
}

// writeSprintHeader prints the one-line summary above a series table.
func writeSprintHeader(w io.Writer, sprint schema.SprintSnapshot, asOf schema.Date) error {
	fmtFloat, _ := createFormatters(pointsPrecision, missingPoints)
	_, err := fmt.Fprintf(w, "%s (%s~%s) goal %s, remaining %s of %s as of %s\n",
		sprint.Name, sprint.StartDate.Label(), sprint.EndDate.Label(),
		fmtFloat(sprint.GoalPoints), fmtFloat(sprint.RemainingPointsSum),
		fmtFloat(sprint.TotalPointsSum), asOf)
	return err
}

// writeSeriesTable prints one row per sprint day.
func writeSeriesTable(w io.Writer, rows []schema.SeriesRow, useColors bool) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Day", "Remaining", "Guideline", "Status"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	fmtFloat, fmtPoints := createFormatters(pointsPrecision, missingPoints)
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		label := contract.GetPlainLabel(r.Status)
		if useColors {
			label = contract.GetColorLabel(r.Status)
		}
		data = append(data, []string{
			r.Date.String(),
			r.Label,
			fmtPoints(r.Remaining),
			fmtFloat(r.Guideline),
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
