// Package locaties provides database operations for course locations.
package locaties

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

// Repository handles all location database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new locations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]entities.Locatie, error) {
	var locaties []entities.Locatie
	err := r.db.WithContext(ctx).Preload("Adres.Plaats").Order("naam ASC").Find(&locaties).Error
	return locaties, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Locatie, error) {
	var l entities.Locatie
	if err := r.db.WithContext(ctx).Preload("Adres.Plaats").First(&l, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &l, nil
}

// Create inserts the location and its address.
func (r *Repository) Create(ctx context.Context, l *entities.Locatie) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if l.Adres.PlaatsID == 0 {
			l.Adres.PlaatsID = entities.OnbekendePlaatsID
		}
		if err := tx.Omit(clause.Associations).Create(&l.Adres).Error; err != nil {
			return err
		}
		l.AdresID = l.Adres.ID
		return tx.Omit(clause.Associations).Create(l).Error
	}))
}

func (r *Repository) Update(ctx context.Context, l *entities.Locatie) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.Locatie
		if err := tx.First(&current, l.ID).Error; err != nil {
			return err
		}
		l.Adres.ID = current.AdresID
		if l.Adres.PlaatsID == 0 {
			l.Adres.PlaatsID = entities.OnbekendePlaatsID
		}
		if err := tx.Omit(clause.Associations).Save(&l.Adres).Error; err != nil {
			return err
		}
		l.AdresID = current.AdresID
		l.CreatedAt = current.CreatedAt
		return tx.Omit(clause.Associations).Save(l).Error
	}))
}

// Delete removes the location; projects held there lose their location.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l entities.Locatie
		if err := tx.First(&l, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Project{}).Where("locatie_id = ?", id).Update("locatie_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&l).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Adres{}, l.AdresID).Error
	}))
}
