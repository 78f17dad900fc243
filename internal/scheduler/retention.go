// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vzwadmin/beheer/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// RetentionScheduler periodically deletes finished import runs older than
// the retention period. With a task client the cleanup is enqueued as a
// backlite task; otherwise it runs inline on the cron goroutine.
type RetentionScheduler struct {
	cleaner       tasks.ImportRunCleaner
	client        *tasks.Client
	schedule      string
	retentionDays int
	logger        zerolog.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewRetentionScheduler creates a new scheduler instance. client may be nil.
func NewRetentionScheduler(cleaner tasks.ImportRunCleaner, client *tasks.Client, schedule string, retentionDays int, logger zerolog.Logger) *RetentionScheduler {
	return &RetentionScheduler{
		cleaner:       cleaner,
		client:        client,
		schedule:      schedule,
		retentionDays: retentionDays,
		logger:        logger.With().Str("component", "retention").Logger(),
		cron:          cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler. An empty schedule or a non-positive
// retention disables it.
func (s *RetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" || s.retentionDays <= 0 {
		s.logger.Info().Msg("import run retention disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.run(cancelCtx)
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.logger.Info().
		Str("schedule", s.schedule).
		Int("retention_days", s.retentionDays).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("import run retention started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.logger.Info().Msg("import run retention stopped")
}

// RunNow triggers an immediate cleanup and waits for it to be handed off.
func (s *RetentionScheduler) RunNow(ctx context.Context) error {
	return s.trigger(ctx)
}

// IsRunning returns whether the scheduler is active
func (s *RetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will occur
func (s *RetentionScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.cron.Entry(s.entryID).Next
	return &t
}

func (s *RetentionScheduler) run(ctx context.Context) {
	if err := s.trigger(ctx); err != nil {
		s.logger.Error().Err(err).Msg("import run retention failed")
	}
}

func (s *RetentionScheduler) trigger(ctx context.Context) error {
	task := tasks.CleanupImportRunsTask{RetentionDays: s.retentionDays}
	if s.client != nil {
		if _, err := s.client.Add(task).Save(); err != nil {
			return fmt.Errorf("enqueue import run cleanup: %w", err)
		}
		return nil
	}
	return tasks.CleanupImportRunsProcessor(s.cleaner, s.logger)(ctx, task)
}
