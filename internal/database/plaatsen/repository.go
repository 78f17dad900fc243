// Package plaatsen provides database operations for places.
//
// # Usage
//
//	repo := plaatsen.NewRepository(db)
//	matches, err := repo.FindByPostcode(ctx, "2000")
package plaatsen

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

// BatchSize is the number of places inserted per statement.
const BatchSize = 500

// Repository handles all place database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new places repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns places ordered by postcode, optionally filtered on a postcode
// prefix or a (deel)gemeente substring.
func (r *Repository) List(ctx context.Context, query string, limit, offset int) ([]entities.Plaats, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Plaats{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("postcode LIKE ? OR LOWER(deelgemeente) LIKE LOWER(?) OR LOWER(gemeente) LIKE LOWER(?)", query+"%", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var plaatsen []entities.Plaats
	err := q.Order("postcode ASC, deelgemeente ASC").Find(&plaatsen).Error
	return plaatsen, total, err
}

// All returns every place, sentinel included.
func (r *Repository) All(ctx context.Context) ([]entities.Plaats, error) {
	var plaatsen []entities.Plaats
	err := r.db.WithContext(ctx).Order("id ASC").Find(&plaatsen).Error
	return plaatsen, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Plaats, error) {
	var plaats entities.Plaats
	if err := r.db.WithContext(ctx).First(&plaats, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &plaats, nil
}

func (r *Repository) FindByPostcode(ctx context.Context, postcode string) ([]entities.Plaats, error) {
	var plaatsen []entities.Plaats
	err := r.db.WithContext(ctx).Where("postcode = ?", postcode).Order("id ASC").Find(&plaatsen).Error
	return plaatsen, err
}

// Create inserts a place, deriving the province from the postcode when unset.
func (r *Repository) Create(ctx context.Context, plaats *entities.Plaats) error {
	if plaats.Provincie == "" {
		plaats.Provincie = entities.ProvincieVoorPostcode(plaats.Postcode)
	}
	return database.Translate(r.db.WithContext(ctx).Create(plaats).Error)
}

func (r *Repository) Update(ctx context.Context, plaats *entities.Plaats) error {
	plaats.Provincie = entities.ProvincieVoorPostcode(plaats.Postcode)
	return database.Translate(r.db.WithContext(ctx).Save(plaats).Error)
}

// InsertMissing bulk inserts places, silently skipping rows that collide on
// (postcode, deelgemeente). It returns the number of rows written.
func (r *Repository) InsertMissing(ctx context.Context, plaatsen []entities.Plaats) (int64, error) {
	if len(plaatsen) == 0 {
		return 0, nil
	}
	for i := range plaatsen {
		if plaatsen[i].Provincie == "" {
			plaatsen[i].Provincie = entities.ProvincieVoorPostcode(plaatsen[i].Postcode)
		}
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&plaatsen, BatchSize)
	return result.RowsAffected, result.Error
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Plaats{}).Count(&n).Error
	return n, err
}
