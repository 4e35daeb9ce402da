package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// Dispatcher runs the report pipeline once per trigger.
type Dispatcher struct {
	Fetcher   contract.SprintFetcher
	Store     contract.SnapshotStore
	Renderer  contract.ChartRenderer
	Deliverer contract.Deliverer // may be nil when DryRun is set
	Logger    *slog.Logger

	RapidViewID int64
	SprintID    int64
	OutputDir   string
	Lenient     bool
	Workers     int
	DryRun      bool

	// Location and Now decide the capture date RunOnce accepts.
	Location *time.Location
	Now      func() time.Time
}

// NewDispatcher wires a Dispatcher from validated configuration.
func NewDispatcher(cfg *contract.Config, fetcher contract.SprintFetcher, store contract.SnapshotStore,
	renderer contract.ChartRenderer, deliverer contract.Deliverer, logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		Fetcher:     fetcher,
		Store:       store,
		Renderer:    renderer,
		Deliverer:   deliverer,
		Logger:      logger,
		RapidViewID: cfg.RapidViewID,
		SprintID:    cfg.SprintID,
		OutputDir:   cfg.OutputDir,
		Lenient:     cfg.Lenient,
		Workers:     cfg.Workers,
		DryRun:      cfg.DryRun,
		Location:    cfg.Location,
		Now:         time.Now,
	}
}

// captureDate is the current calendar date in the dispatcher's zone.
func (d *Dispatcher) captureDate() schema.Date {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return schema.DateOf(now().In(loc))
}

// fail logs a pipeline abort once and returns err unchanged.
func (d *Dispatcher) fail(stage contract.Stage, date schema.Date, err error) error {
	d.Logger.Error("report: stage failed",
		"stage", stage,
		"date", date.Key(),
		"sprint_id", d.SprintID,
		"error", err)
	return err
}

// RunOnce fetches today's snapshot, rebuilds the series, renders the chart,
// writes it to OutputDir and delivers it. Nothing is delivered if an earlier stage fails.
// today must be the current date; past days are never recaptured.
func (d *Dispatcher) RunOnce(ctx context.Context, today schema.Date) (schema.ReportResult, error) {
	result := schema.ReportResult{Date: today}

	// Live numbers may only be stored under the real capture date.
	if current := d.captureDate(); !today.Equal(current) {
		return result, d.fail(contract.StageFetch, today, &contract.CaptureDateError{Date: today, Today: current})
	}

	sprint, err := d.Fetcher.FetchToday(ctx, d.RapidViewID, d.SprintID)
	if err != nil {
		return result, d.fail(contract.StageFetch, today, err)
	}
	result.Sprint = sprint

	opts := AssembleOptions{Lenient: d.Lenient, Workers: d.Workers, Logger: d.Logger}
	burndown, err := AssembleSeries(ctx, sprint, d.Store, today, opts)
	if err != nil {
		return result, d.fail(contract.StageAssemble, today, err)
	}
	result.Burndown = burndown

	guideline, err := ProjectGuideline(sprint.GoalPoints, sprint.StartDate, sprint.EndDate)
	if err != nil {
		return result, d.fail(contract.StageProject, today, err)
	}
	result.Guideline = guideline

	spec, err := BuildChartSpec(burndown, guideline, sprint)
	if err != nil {
		return result, d.fail(contract.StageChart, today, err)
	}

	image, err := d.Renderer.Render(ctx, spec)
	if err != nil {
		return result, d.fail(contract.StageRender, today, err)
	}

	artifact, err := d.writeArtifact(today, image)
	if err != nil {
		return result, d.fail(contract.StageArtifact, today, err)
	}
	result.Artifact = artifact.Path
	d.Logger.Info("report: artifact written", "date", today.Key(), "sprint_id", d.SprintID, "path", artifact.Path)

	if d.DryRun {
		d.Logger.Info("report: dry run, skipping delivery", "date", today.Key(), "sprint_id", d.SprintID)
		return result, nil
	}
	if err := d.deliver(ctx, artifact); err != nil {
		return result, d.fail(contract.StageDeliver, today, err)
	}
	result.Delivered = true
	return result, nil
}

// Resend delivers the artifact already written for date.
func (d *Dispatcher) Resend(ctx context.Context, date schema.Date) (schema.Artifact, error) {
	artifact := newArtifact(d.OutputDir, date)
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		return artifact, d.fail(contract.StageArtifact, date, fmt.Errorf("read artifact: %w", err))
	}
	artifact.Data = data
	if err := d.deliver(ctx, artifact); err != nil {
		return artifact, d.fail(contract.StageDeliver, date, err)
	}
	return artifact, nil
}

func (d *Dispatcher) deliver(ctx context.Context, artifact schema.Artifact) error {
	if d.Deliverer == nil {
		return &contract.DeliveryError{Filename: artifact.Filename, Err: fmt.Errorf("no deliverer configured")}
	}
	if err := d.Deliverer.Deliver(ctx, artifact); err != nil {
		return err
	}
	d.Logger.Info("report: artifact delivered", "date", artifact.Date.Key(), "sprint_id", d.SprintID, "filename", artifact.Filename)
	return nil
}

func newArtifact(dir string, date schema.Date) schema.Artifact {
	name := schema.ArtifactFilename(date)
	return schema.Artifact{
		Date:     date,
		Filename: name,
		Title:    name,
		Path:     filepath.Join(dir, name),
	}
}

func (d *Dispatcher) writeArtifact(date schema.Date, image []byte) (schema.Artifact, error) {
	artifact := newArtifact(d.OutputDir, date)
	artifact.Data = image
	if err := os.MkdirAll(d.OutputDir, 0o755); err != nil {
		return artifact, fmt.Errorf("create output directory: %w", err)
	}
	if err := contract.WriteFileAtomic(artifact.Path, image); err != nil {
		return artifact, fmt.Errorf("write artifact: %w", err)
	}
	return artifact, nil
}
