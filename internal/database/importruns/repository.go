// Package importruns stores the history of seeding runs.
package importruns

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

// Repository handles all import run database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new import runs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, run *entities.ImportRun) error {
	return database.Translate(r.db.WithContext(ctx).Create(run).Error)
}

func (r *Repository) Save(ctx context.Context, run *entities.ImportRun) error {
	return database.Translate(r.db.WithContext(ctx).Save(run).Error)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.ImportRun, error) {
	var run entities.ImportRun
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &run, nil
}

// List returns the most recent runs first.
func (r *Repository) List(ctx context.Context, limit int) ([]entities.ImportRun, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var runs []entities.ImportRun
	err := q.Find(&runs).Error
	return runs, err
}

// DeleteFinishedBefore removes completed and failed runs created before
// cutoff. Queued and running runs are kept regardless of age.
func (r *Repository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ? AND status IN ?", cutoff, []entities.ImportRunStatus{entities.ImportRunCompleted, entities.ImportRunFailed}).
		Delete(&entities.ImportRun{})
	return result.RowsAffected, result.Error
}
