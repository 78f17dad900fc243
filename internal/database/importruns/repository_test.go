package importruns

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(database.Options{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db.DB
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	run := &entities.ImportRun{ID: "run-1", Status: entities.ImportRunQueued, Stages: []string{"plaatsen", "deelnemers"}}
	require.NoError(t, repo.Create(ctx, run))

	run.Status = entities.ImportRunCompleted
	run.Warnings = 3
	require.NoError(t, repo.Save(ctx, run))

	got, err := repo.GetByID(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, entities.ImportRunCompleted, got.Status)
	assert.Equal(t, 3, got.Warnings)
	assert.Equal(t, []string{"plaatsen", "deelnemers"}, got.Stages)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_List_NewestFirst(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &entities.ImportRun{
			ID:        id,
			Status:    entities.ImportRunCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestRepository_DeleteFinishedBefore(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		id      string
		status  entities.ImportRunStatus
		created time.Time
		kept    bool
	}{
		{"old-completed", entities.ImportRunCompleted, old, false},
		{"old-failed", entities.ImportRunFailed, old, false},
		{"old-running", entities.ImportRunRunning, old, true},
		{"old-queued", entities.ImportRunQueued, old, true},
		{"recent-completed", entities.ImportRunCompleted, recent, true},
	}
	for _, tt := range tests {
		require.NoError(t, repo.Create(ctx, &entities.ImportRun{ID: tt.id, Status: tt.status, CreatedAt: tt.created}))
	}

	deleted, err := repo.DeleteFinishedBefore(ctx, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := repo.GetByID(ctx, tt.id)
			if tt.kept {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, database.ErrNotFound)
			}
		})
	}
}
