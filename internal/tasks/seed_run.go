package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog"

	"github.com/vzwadmin/beheer/internal/entities"
	"github.com/vzwadmin/beheer/internal/importers"
	"github.com/vzwadmin/beheer/internal/seeding"
)

// SeedExecutor executes a previously recorded import run.
type SeedExecutor interface {
	Execute(ctx context.Context, runID string, req seeding.Request) (importers.Result, error)
}

// SeedRunTask executes one seeding run in the background.
type SeedRunTask struct {
	RunID   string          `json:"run_id"`
	Request seeding.Request `json:"request"`
}

// Config returns the queue configuration for seeding runs. A failed run is
// recorded on its ImportRun row and is not retried.
func (t SeedRunTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "seed_run",
		MaxAttempts: 1,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SeedRunProcessor creates a processor function for SeedRunTask.
func SeedRunProcessor(executor SeedExecutor, logger zerolog.Logger) backlite.QueueProcessor[SeedRunTask] {
	return func(ctx context.Context, task SeedRunTask) error {
		if executor == nil {
			return fmt.Errorf("seeding service not configured")
		}

		result, err := executor.Execute(ctx, task.RunID, task.Request)
		if err != nil {
			return fmt.Errorf("seed run %s: %w", task.RunID, err)
		}

		logger.Info().
			Str("run_id", task.RunID).
			Int("errors", result.Totals.Errors).
			Int("warnings", result.Totals.Warnings).
			Msg("seed run finished")
		return nil
	}
}

// NewSeedRunQueue creates a backlite queue for seeding runs.
func NewSeedRunQueue(executor SeedExecutor, logger zerolog.Logger) backlite.Queue {
	return backlite.NewQueue(SeedRunProcessor(executor, logger))
}

// SeedRunEnqueuer records a queued ImportRun and hands it to the task queue.
type SeedRunEnqueuer struct {
	client    *Client
	service   *seeding.Service
	importDir string
}

func NewSeedRunEnqueuer(client *Client, service *seeding.Service, importDir string) *SeedRunEnqueuer {
	return &SeedRunEnqueuer{client: client, service: service, importDir: importDir}
}

// EnqueueSeedRun reads from the configured import directory; callers
// cannot point a run elsewhere.
func (e *SeedRunEnqueuer) EnqueueSeedRun(ctx context.Context, readonly, dryRun bool, stages []string) (*entities.ImportRun, error) {
	req := seeding.Request{
		ImportDir: e.importDir,
		Readonly:  readonly,
		DryRun:    dryRun,
		Stages:    stages,
	}
	run, err := e.service.Enqueue(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := e.client.Add(SeedRunTask{RunID: run.ID, Request: req}).Save(); err != nil {
		return nil, fmt.Errorf("failed to enqueue seed run %s: %w", run.ID, err)
	}
	return run, nil
}
