package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// writeSeriesCSV writes series rows with a header. Missing days leave remaining empty.
func writeSeriesCSV(w io.Writer, rows []schema.SeriesRow) error {
	header := []string{"date", "label", "remaining", "guideline", "status"}
	fmtFloat, fmtPoints := createFormatters(pointsPrecision, "")

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range rows {
			row := []string{
				r.Date.Key(),
				r.Label,
				fmtPoints(r.Remaining),
				fmtFloat(r.Guideline),
				contract.GetPlainLabel(r.Status),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
