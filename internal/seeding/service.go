// Package seeding runs the legacy import pipeline against the database and
// records every run as an ImportRun row.
//
// A run is either live, readonly (no diagnostics or lookup files are
// written) or a dry run (every store write happens inside a transaction
// that is rolled back at the end and no lookup files are written).
// Readonly and dry run combine.
//
// # Usage
//
//	svc := seeding.NewService(db.DB, sink, logger)
//	run, result, err := svc.Run(ctx, seeding.Request{ImportDir: "./export"})
package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vzwadmin/beheer/internal/database/importruns"
	"github.com/vzwadmin/beheer/internal/database/seedstore"
	"github.com/vzwadmin/beheer/internal/entities"
	"github.com/vzwadmin/beheer/internal/importers"
	"github.com/vzwadmin/beheer/internal/output"
)

// errDryRun rolls back the dry run transaction.
var errDryRun = errors.New("dry run")

// Request describes one seeding run.
type Request struct {
	ImportDir string   `json:"import_dir"`
	Readonly  bool     `json:"readonly"`
	DryRun    bool     `json:"dry_run"`
	Stages    []string `json:"stages,omitempty"`
}

// Observer receives pipeline telemetry and the final status of each run.
type Observer interface {
	importers.Observer
	RunFinished(status string)
}

type Service struct {
	db       *gorm.DB
	runs     *importruns.Repository
	sink     output.Sink
	observer Observer
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(db *gorm.DB, sink output.Sink, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		runs:   importruns.NewRepository(db),
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// WithObserver attaches run telemetry, typically *metrics.Metrics.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// Stages returns the names of the stages a full run executes.
func (s *Service) Stages() []string {
	return importers.NewPipeline(nil, nil, importers.Options{}).Stages()
}

// Enqueue records a queued run. The caller executes it later with Execute.
func (s *Service) Enqueue(ctx context.Context, req Request) (*entities.ImportRun, error) {
	run := &entities.ImportRun{
		ID:       uuid.NewString(),
		Status:   entities.ImportRunQueued,
		Readonly: req.Readonly,
		DryRun:   req.DryRun,
		Stages:   req.Stages,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record import run: %w", err)
	}
	return run, nil
}

// Run enqueues and executes a run synchronously.
func (s *Service) Run(ctx context.Context, req Request) (*entities.ImportRun, importers.Result, error) {
	run, err := s.Enqueue(ctx, req)
	if err != nil {
		return nil, importers.Result{}, err
	}
	result, err := s.Execute(ctx, run.ID, req)
	if reloaded, getErr := s.runs.GetByID(context.WithoutCancel(ctx), run.ID); getErr == nil {
		run = reloaded
	}
	return run, result, err
}

// Execute runs the pipeline for a queued run and stores the outcome. A
// failed run keeps the diagnostics of the stages that did run.
func (s *Service) Execute(ctx context.Context, runID string, req Request) (importers.Result, error) {
	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return importers.Result{}, fmt.Errorf("failed to load import run %s: %w", runID, err)
	}

	started := s.now()
	run.Status = entities.ImportRunRunning
	run.StartedAt = &started
	if err := s.runs.Save(ctx, run); err != nil {
		return importers.Result{}, fmt.Errorf("failed to mark import run running: %w", err)
	}

	logger := s.logger.With().Str("run_id", runID).Bool("readonly", req.Readonly).Bool("dry_run", req.DryRun).Logger()
	logger.Info().Strs("stages", req.Stages).Msg("seeding run started")

	result, runErr := s.execute(ctx, req, logger)

	finished := s.now()
	run.FinishedAt = &finished
	run.Errors = result.Totals.Errors
	run.Warnings = result.Totals.Warnings
	run.Infos = result.Totals.Infos
	if runErr != nil {
		run.Status = entities.ImportRunFailed
		run.Failure = truncate(runErr.Error(), 1000)
		logger.Error().Err(runErr).Strs("completed", result.CompletedStages()).Msg("seeding run failed")
	} else {
		run.Status = entities.ImportRunCompleted
		logger.Info().
			Int("errors", run.Errors).
			Int("warnings", run.Warnings).
			Dur("duration", finished.Sub(started)).
			Msg("seeding run completed")
	}

	// The outcome is recorded even when the run was cancelled.
	if err := s.runs.Save(context.WithoutCancel(ctx), run); err != nil {
		logger.Error().Err(err).Msg("failed to record import run outcome")
		if runErr == nil {
			runErr = err
		}
	}
	if s.observer != nil {
		s.observer.RunFinished(string(run.Status))
	}
	return result, runErr
}

func (s *Service) execute(ctx context.Context, req Request, logger zerolog.Logger) (importers.Result, error) {
	opts := importers.Options{
		ImportDir:   req.ImportDir,
		Readonly:    req.Readonly,
		SkipLookups: req.DryRun,
		Only:        req.Stages,
		Now:         s.now,
		Logger:      logger,
	}
	if s.observer != nil {
		opts.Observer = s.observer
	}

	if !req.DryRun {
		return importers.NewPipeline(seedstore.New(s.db), s.sink, opts).Run(ctx)
	}

	var result importers.Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = importers.NewPipeline(seedstore.New(tx), s.sink, opts).Run(ctx)
		if err != nil {
			return err
		}
		return errDryRun
	})
	if errors.Is(err, errDryRun) {
		logger.Info().Msg("dry run rolled back")
		return result, nil
	}
	return result, err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
