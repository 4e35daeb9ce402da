// main is the entry point for the burndown CLI.
package main

import (
	// Embedded zone data so --timezone works on minimal cron images.
	_ "time/tzdata"

	"github.com/sprintchart/burndown/cmd"
	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/snapstore"
)

func main() {
	err := cmd.Execute()
	snapstore.CloseStore()
	if err != nil {
		contract.LogFatal("burndown", err)
	}
}
