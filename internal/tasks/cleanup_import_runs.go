package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog"
)

// ImportRunCleaner deletes finished import runs.
type ImportRunCleaner interface {
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupImportRunsTask removes finished import runs older than the
// configured retention period.
type CleanupImportRunsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for import run cleanup tasks.
func (t CleanupImportRunsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_import_runs",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupImportRunsProcessor creates a processor function for CleanupImportRunsTask.
func CleanupImportRunsProcessor(cleaner ImportRunCleaner, logger zerolog.Logger) backlite.QueueProcessor[CleanupImportRunsTask] {
	return func(ctx context.Context, task CleanupImportRunsTask) error {
		if cleaner == nil {
			return fmt.Errorf("import run cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}
		cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)

		deleted, err := cleaner.DeleteFinishedBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("cleanup import runs: %w", err)
		}

		logger.Info().Int64("deleted", deleted).Int("retention_days", retentionDays).Msg("cleaned up import runs")
		return nil
	}
}

// NewCleanupImportRunsQueue creates a backlite queue for import run cleanup tasks.
func NewCleanupImportRunsQueue(cleaner ImportRunCleaner, logger zerolog.Logger) backlite.Queue {
	return backlite.NewQueue(CleanupImportRunsProcessor(cleaner, logger))
}
