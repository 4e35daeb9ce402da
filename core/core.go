// Package core has the burndown pipeline: series assembly, guideline
// projection, chart spec building and report dispatch.
package core

import (
	"log/slog"

	"github.com/sprintchart/burndown/schema"
)

// AssembleOptions controls how snapshot history is reconstructed.
type AssembleOptions struct {
	// Lenient fills missing days with nil instead of failing.
	Lenient bool
	// Workers bounds concurrent store lookups. Values below 1 mean 1.
	Workers int
	Logger  *slog.Logger
}

func (o AssembleOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o AssembleOptions) workers() int {
	return max(o.Workers, 1)
}

// chartTitle formats "{name} ({MM/DD}~{MM/DD})".
func chartTitle(sprint schema.SprintSnapshot) string {
	return sprint.Name + " (" + sprint.StartDate.Label() + "~" + sprint.EndDate.Label() + ")"
}
