package importers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vzwadmin/beheer/internal/output"
)

// ErrCountMismatch means the row counts in the store moved by a different
// amount than the stage reported writing. It is always fatal.
var ErrCountMismatch = errors.New("written row count does not match expected count")

// ErrUnknownStage is returned when Options.Only names a stage that does
// not exist.
var ErrUnknownStage = errors.New("unknown stage")

// StageResult is what a stage reports having done to the store.
type StageResult struct {
	Created int64
	Updated int64
	Deleted int64
}

// Stage is one step of the seeding run.
type Stage struct {
	Name string
	// File is the export read by the stage, without extension.
	File     string
	Optional bool
	// Produces lists the lookups persisted after the stage completes.
	Produces []string
	// Tally selects the counts the stage writes to. The difference before
	// and after the stage must equal Created - Deleted. Nil skips the check.
	Tally func(Counts) int64
	Run   func(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error)
}

// StageReport summarizes one executed (or skipped) stage.
type StageReport struct {
	Name        string           `json:"name"`
	Skipped     bool             `json:"skipped,omitempty"`
	Records     int              `json:"records"`
	Created     int64            `json:"created"`
	Updated     int64            `json:"updated"`
	Deleted     int64            `json:"deleted"`
	Diagnostics DiagnosticCounts `json:"diagnostics"`
	Duration    time.Duration    `json:"duration"`
}

// Result is the outcome of a run, complete up to the failing stage when
// Run returns an error.
type Result struct {
	Stages []StageReport    `json:"stages"`
	Totals DiagnosticCounts `json:"totals"`
}

// CompletedStages returns the names of stages that ran to completion.
func (r Result) CompletedStages() []string {
	names := make([]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		if !s.Skipped {
			names = append(names, s.Name)
		}
	}
	return names
}

// StageError wraps the error that aborted a stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Observer receives run telemetry. See internal/metrics.
type Observer interface {
	Diagnostic(stage string, sev Severity, category string)
	StageFinished(stage string, d time.Duration)
}

type noopObserver struct{}

func (noopObserver) Diagnostic(string, Severity, string) {}
func (noopObserver) StageFinished(string, time.Duration) {}

// Options configures a pipeline run.
type Options struct {
	ImportDir string
	// Readonly suppresses diagnostics and lookup files. Store writes still
	// happen; wrap the store in a rolled back transaction for a dry run.
	Readonly bool
	// SkipLookups suppresses only the lookup files. Dry runs set it since
	// their ids are rolled back.
	SkipLookups bool
	// Only restricts the run to the named stages, in pipeline order.
	Only     []string
	Now      func() time.Time
	Observer Observer
	Logger   zerolog.Logger
}

// Pipeline runs the seeding stages in their fixed dependency order:
// places, people, organisations, projects, enrollments, participations and
// the correction passes.
type Pipeline struct {
	store  Store
	sink   output.Sink
	stages []Stage
	opts   Options
}

// NewPipeline creates a pipeline over the default stages. sink may be nil,
// in which case nothing is persisted and no persisted lookups are read.
func NewPipeline(store Store, sink output.Sink, opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Observer == nil {
		opts.Observer = noopObserver{}
	}
	return &Pipeline{store: store, sink: sink, stages: DefaultStages(), opts: opts}
}

// WithStages replaces the stage list.
func (p *Pipeline) WithStages(stages ...Stage) *Pipeline {
	p.stages = stages
	return p
}

// Stages returns the names of the configured stages in run order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run executes the stages sequentially. A fatal error stops the run after
// the failing stage's diagnostics have been flushed.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var result Result

	selected, err := p.selectStages()
	if err != nil {
		return result, err
	}

	run := newRun(p.store, p.sink, p.opts.Logger, p.opts.Now())

	for _, stage := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		report, err := p.runStage(ctx, run, stage)
		result.Stages = append(result.Stages, report)
		result.Totals = result.Totals.Add(report.Diagnostics)
		if err != nil {
			return result, &StageError{Stage: stage.Name, Err: err}
		}
	}

	return result, nil
}

func (p *Pipeline) selectStages() ([]Stage, error) {
	if len(p.opts.Only) == 0 {
		return p.stages, nil
	}
	want := make(map[string]bool, len(p.opts.Only))
	for _, name := range p.opts.Only {
		want[name] = true
	}
	var selected []Stage
	for _, s := range p.stages {
		if want[s.Name] {
			selected = append(selected, s)
			delete(want, s.Name)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for name := range want {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, strings.Join(unknown, ", "))
	}
	return selected, nil
}

func (p *Pipeline) runStage(ctx context.Context, run *Run, stage Stage) (StageReport, error) {
	start := time.Now()
	report := StageReport{Name: stage.Name}
	logger := p.opts.Logger.With().Str("stage", stage.Name).Logger()

	diag := NewDiagnostics(stage.Name)
	diag.OnRecord(func(sev Severity, e Entry) {
		p.opts.Observer.Diagnostic(stage.Name, sev, e.Category)
	})

	finish := func(err error) (StageReport, error) {
		report.Diagnostics = diag.Counts()
		report.Duration = time.Since(start)
		p.opts.Observer.StageFinished(stage.Name, report.Duration)
		if flushErr := p.flushDiagnostics(ctx, diag); flushErr != nil {
			if err == nil {
				err = flushErr
			} else {
				logger.Error().Err(flushErr).Msg("failed to write diagnostics")
			}
		}
		return report, err
	}

	records, err := ReadSource(p.opts.ImportDir, stage.File)
	if errors.Is(err, ErrSourceMissing) && stage.Optional {
		diag.Info("bron_ontbreekt", nil, "%s niet gevonden, stage overgeslagen", stage.File)
		logger.Info().Str("file", stage.File).Msg("optional source missing, skipping stage")
		report.Skipped = true
		return finish(nil)
	}
	if err != nil {
		return finish(err)
	}
	report.Records = len(records)
	logger.Info().Int("records", len(records)).Msg("stage started")

	before, err := p.store.Counts(ctx)
	if err != nil {
		return finish(fmt.Errorf("failed to count rows: %w", err))
	}

	res, err := stage.Run(ctx, run, diag, records)
	report.Created, report.Updated, report.Deleted = res.Created, res.Updated, res.Deleted
	if err != nil {
		return finish(err)
	}

	if stage.Tally != nil {
		after, err := p.store.Counts(ctx)
		if err != nil {
			return finish(fmt.Errorf("failed to count rows: %w", err))
		}
		written := stage.Tally(after) - stage.Tally(before)
		expected := res.Created - res.Deleted
		if written != expected {
			return finish(fmt.Errorf("%w: wrote %d, expected %d", ErrCountMismatch, written, expected))
		}
	}

	if err := p.persistLookups(ctx, run, stage); err != nil {
		return finish(err)
	}

	counts := diag.Counts()
	logger.Info().
		Int64("created", res.Created).
		Int64("updated", res.Updated).
		Int64("deleted", res.Deleted).
		Int("errors", counts.Errors).
		Int("warnings", counts.Warnings).
		Int("infos", counts.Infos).
		Msg("stage completed")

	return finish(nil)
}

func (p *Pipeline) flushDiagnostics(ctx context.Context, diag *Diagnostics) error {
	if p.opts.Readonly || p.sink == nil {
		return nil
	}
	snap := diag.Snapshot()
	return output.PutJSON(ctx, p.sink, snap.Stage+"-diagnostics.json", snap)
}

func (p *Pipeline) persistLookups(ctx context.Context, run *Run, stage Stage) error {
	if p.opts.Readonly || p.opts.SkipLookups || p.sink == nil {
		return nil
	}
	for _, name := range stage.Produces {
		l, ok := run.lookups[name]
		if !ok {
			continue
		}
		if err := output.PutJSON(ctx, p.sink, lookupFile(name), l); err != nil {
			return fmt.Errorf("failed to persist lookup %s: %w", name, err)
		}
	}
	return nil
}
