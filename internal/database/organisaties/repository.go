// Package organisaties provides database operations for partner
// organisations and their contact persons.
package organisaties

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

// Repository handles all organisation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new organisations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, query string, limit, offset int) ([]entities.Organisatie, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Organisatie{})
	if query != "" {
		q = q.Where("LOWER(naam) LIKE LOWER(?)", "%"+query+"%")
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

	var organisaties []entities.Organisatie
	err := q.Preload("Adres.Plaats").Preload("Contactpersonen").Order("naam ASC").Find(&organisaties).Error
	return organisaties, total, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Organisatie, error) {
	var o entities.Organisatie
	err := r.db.WithContext(ctx).Preload("Adres.Plaats").Preload("Contactpersonen").First(&o, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &o, nil
}

// Create inserts the organisation with its optional address and contacts.
func (r *Repository) Create(ctx context.Context, o *entities.Organisatie) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.Adres != nil {
			if o.Adres.PlaatsID == 0 {
				o.Adres.PlaatsID = entities.OnbekendePlaatsID
			}
			if err := tx.Omit(clause.Associations).Create(o.Adres).Error; err != nil {
				return err
			}
			o.AdresID = &o.Adres.ID
		}
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}
		for i := range o.Contactpersonen {
			o.Contactpersonen[i].ID = 0
			o.Contactpersonen[i].OrganisatieID = o.ID
		}
		if len(o.Contactpersonen) > 0 {
			return tx.Create(&o.Contactpersonen).Error
		}
		return nil
	}))
}

// Update saves the organisation, replacing its address and contact list.
func (r *Repository) Update(ctx context.Context, o *entities.Organisatie) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.Organisatie
		if err := tx.First(&current, o.ID).Error; err != nil {
			return err
		}

		o.AdresID = nil
		if o.Adres != nil {
			if o.Adres.PlaatsID == 0 {
				o.Adres.PlaatsID = entities.OnbekendePlaatsID
			}
			if current.AdresID != nil {
				o.Adres.ID = *current.AdresID
				if err := tx.Omit(clause.Associations).Save(o.Adres).Error; err != nil {
					return err
				}
			} else {
				o.Adres.ID = 0
				if err := tx.Omit(clause.Associations).Create(o.Adres).Error; err != nil {
					return err
				}
			}
			o.AdresID = &o.Adres.ID
		}

		o.CreatedAt = current.CreatedAt
		if err := tx.Omit(clause.Associations).Save(o).Error; err != nil {
			return err
		}
		if o.Adres == nil && current.AdresID != nil {
			if err := tx.Delete(&entities.Adres{}, *current.AdresID).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("organisatie_id = ?", o.ID).Delete(&entities.Contactpersoon{}).Error; err != nil {
			return err
		}
		for i := range o.Contactpersonen {
			o.Contactpersonen[i].ID = 0
			o.Contactpersonen[i].OrganisatieID = o.ID
		}
		if len(o.Contactpersonen) > 0 {
			return tx.Create(&o.Contactpersonen).Error
		}
		return nil
	}))
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o entities.Organisatie
		if err := tx.First(&o, id).Error; err != nil {
			return err
		}
		if err := tx.Where("organisatie_id = ?", id).Delete(&entities.Contactpersoon{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&o).Error; err != nil {
			return err
		}
		if o.AdresID != nil {
			return tx.Delete(&entities.Adres{}, *o.AdresID).Error
		}
		return nil
	}))
}
