package seeding

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/database/seedstore"
	"github.com/vzwadmin/beheer/internal/entities"
	"github.com/vzwadmin/beheer/internal/importers"
	"github.com/vzwadmin/beheer/internal/output"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestService(t *testing.T) (*Service, *database.Database, *output.Memory) {
	t.Helper()
	db, err := database.NewDatabase(database.Options{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sink := output.NewMemory()
	svc := NewService(db.DB, sink, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc, db, sink
}

func writeSource(t *testing.T, dir, name string, records []map[string]any) {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644))
}

// writeExport writes the first two stages' sources only.
func writeExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeSource(t, dir, "plaatsen", []map[string]any{
		{"Postcode": "2000", "Deelgemeente": "Antwerpen", "Gemeente": "Antwerpen"},
	})
	writeSource(t, dir, "deelnemers", []map[string]any{
		{"Voornaam": "Jan", "Naam": "Peeters", "Adres": "Meirstraat 12", "Postcode": "2000"},
		{"Voornaam": "An", "Naam": "Maes", "Adres": "nergens", "Postcode": "2000"},
	})
	return dir
}

var firstStages = []string{importers.StagePlaatsen, importers.StageDeelnemers}

type recordingObserver struct {
	statuses []string
}

func (o *recordingObserver) Diagnostic(string, importers.Severity, string) {}
func (o *recordingObserver) StageFinished(string, time.Duration)           {}
func (o *recordingObserver) RunFinished(status string) {
	o.statuses = append(o.statuses, status)
}

func counts(t *testing.T, db *database.Database) importers.Counts {
	t.Helper()
	c, err := seedstore.New(db.DB).Counts(context.Background())
	require.NoError(t, err)
	return c
}

func TestService_Run(t *testing.T) {
	svc, db, sink := setupTestService(t)
	observer := &recordingObserver{}
	svc.WithObserver(observer)

	run, result, err := svc.Run(context.Background(), Request{ImportDir: writeExport(t), Stages: firstStages})
	require.NoError(t, err)

	assert.Equal(t, entities.ImportRunCompleted, run.Status)
	assert.Equal(t, 1, run.Warnings)
	assert.Equal(t, result.Totals.Warnings, run.Warnings)
	require.NotNil(t, run.StartedAt)
	require.NotNil(t, run.FinishedAt)
	assert.Equal(t, firstStages, run.Stages)
	assert.Equal(t, []string{"completed"}, observer.statuses)

	assert.Equal(t, int64(2), counts(t, db).Deelnemers)
	assert.Contains(t, sink.Names(), "deelnemers-diagnostics.json")
	assert.Contains(t, sink.Names(), "deelnemers-lookup.json")
}

func TestService_Run_DryRunRollsBack(t *testing.T) {
	svc, db, sink := setupTestService(t)

	run, result, err := svc.Run(context.Background(), Request{ImportDir: writeExport(t), Stages: firstStages, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, entities.ImportRunCompleted, run.Status)
	assert.True(t, run.DryRun)
	require.Len(t, result.Stages, 2)
	assert.Equal(t, int64(2), result.Stages[1].Created)

	assert.Equal(t, importers.Counts{Plaatsen: 1}, counts(t, db))
	assert.Contains(t, sink.Names(), "deelnemers-diagnostics.json")
	assert.NotContains(t, sink.Names(), "deelnemers-lookup.json")
}

func TestService_Run_Readonly(t *testing.T) {
	svc, db, sink := setupTestService(t)

	run, _, err := svc.Run(context.Background(), Request{ImportDir: writeExport(t), Stages: firstStages, Readonly: true})
	require.NoError(t, err)

	assert.True(t, run.Readonly)
	assert.Equal(t, int64(2), counts(t, db).Deelnemers)
	assert.Empty(t, sink.Names())
}

func TestService_Run_FailureIsRecorded(t *testing.T) {
	svc, _, sink := setupTestService(t)
	observer := &recordingObserver{}
	svc.WithObserver(observer)

	// organisaties.json is missing, so the third stage fails.
	run, result, err := svc.Run(context.Background(), Request{ImportDir: writeExport(t)})
	require.Error(t, err)
	assert.ErrorIs(t, err, importers.ErrSourceMissing)

	assert.Equal(t, entities.ImportRunFailed, run.Status)
	assert.Contains(t, run.Failure, importers.StageOrganisaties)
	assert.Equal(t, firstStages, result.CompletedStages()[:2])
	assert.Contains(t, sink.Names(), "deelnemers-diagnostics.json", "earlier diagnostics are kept")
	assert.Equal(t, []string{"failed"}, observer.statuses)
}

func TestService_EnqueueThenExecute(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()
	req := Request{ImportDir: writeExport(t), Stages: firstStages}

	run, err := svc.Enqueue(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, entities.ImportRunQueued, run.Status)
	assert.Len(t, run.ID, 36)

	_, err = svc.Execute(ctx, run.ID, req)
	require.NoError(t, err)

	_, err = svc.Execute(ctx, "missing", req)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestService_Stages(t *testing.T) {
	svc, _, _ := setupTestService(t)
	stages := svc.Stages()
	require.NotEmpty(t, stages)
	assert.Equal(t, importers.StagePlaatsen, stages[0])
}
