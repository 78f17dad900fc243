// Package personen provides database operations for deelnemers and
// overige personen. Addresses are owned by the person: they are created,
// replaced and deleted together with it.
//
// # Usage
//
//	repo := personen.NewRepository(db)
//	err := repo.Create(ctx, &entities.Persoon{Type: entities.PersoonTypeDeelnemer, ...})
package personen

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

// Filter narrows List results.
type Filter struct {
	Type     entities.PersoonType
	Query    string
	Selectie entities.OverigPersoonSelectie
	Limit    int
	Offset   int
}

// Repository handles all person database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new persons repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func preloadAdressen(db *gorm.DB) *gorm.DB {
	return db.Preload("Verblijfadres.Plaats").Preload("Domicilieadres.Plaats")
}

func (r *Repository) List(ctx context.Context, f Filter) ([]entities.Persoon, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Persoon{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("LOWER(voornaam) LIKE LOWER(?) OR LOWER(achternaam) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern, pattern)
	}
	if f.Selectie != "" {
		// Selectie is a JSON array of strings.
		q = q.Where("selectie LIKE ?", `%"`+string(f.Selectie)+`"%`)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var personen []entities.Persoon
	err := preloadAdressen(q).Order("achternaam ASC, voornaam ASC, id ASC").Find(&personen).Error
	return personen, total, err
}

// GetByID loads a person with addresses. An empty type matches any type.
func (r *Repository) GetByID(ctx context.Context, id uint, typ entities.PersoonType) (*entities.Persoon, error) {
	q := preloadAdressen(r.db.WithContext(ctx))
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	var persoon entities.Persoon
	if err := q.First(&persoon, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &persoon, nil
}

// Create inserts the person together with its residential and optional
// domicile address.
func (r *Repository) Create(ctx context.Context, p *entities.Persoon) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createPersoon(tx, p)
	}))
}

func createPersoon(tx *gorm.DB, p *entities.Persoon) error {
	if p.Verblijfadres.PlaatsID == 0 {
		p.Verblijfadres.PlaatsID = entities.OnbekendePlaatsID
	}
	if err := tx.Omit(clause.Associations).Create(&p.Verblijfadres).Error; err != nil {
		return err
	}
	p.VerblijfadresID = p.Verblijfadres.ID

	if p.Domicilieadres != nil {
		if err := tx.Omit(clause.Associations).Create(p.Domicilieadres).Error; err != nil {
			return err
		}
		p.DomicilieadresID = &p.Domicilieadres.ID
	}

	if p.Geslacht == "" {
		p.Geslacht = entities.GeslachtOnbekend
	}
	return tx.Omit(clause.Associations).Create(p).Error
}

// Update saves the person's fields and rewrites its addresses in place.
// Removing the domicile address deletes the owned row.
func (r *Repository) Update(ctx context.Context, p *entities.Persoon) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.Persoon
		if err := tx.Where("type = ?", p.Type).First(&current, p.ID).Error; err != nil {
			return err
		}

		p.Verblijfadres.ID = current.VerblijfadresID
		if p.Verblijfadres.PlaatsID == 0 {
			p.Verblijfadres.PlaatsID = entities.OnbekendePlaatsID
		}
		if err := tx.Omit(clause.Associations).Save(&p.Verblijfadres).Error; err != nil {
			return err
		}
		p.VerblijfadresID = current.VerblijfadresID

		switch {
		case p.Domicilieadres != nil && current.DomicilieadresID != nil:
			p.Domicilieadres.ID = *current.DomicilieadresID
			if err := tx.Omit(clause.Associations).Save(p.Domicilieadres).Error; err != nil {
				return err
			}
			p.DomicilieadresID = current.DomicilieadresID
		case p.Domicilieadres != nil:
			p.Domicilieadres.ID = 0
			if err := tx.Omit(clause.Associations).Create(p.Domicilieadres).Error; err != nil {
				return err
			}
			p.DomicilieadresID = &p.Domicilieadres.ID
		default:
			p.DomicilieadresID = nil
		}

		p.CreatedAt = current.CreatedAt
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return err
		}

		if p.Domicilieadres == nil && current.DomicilieadresID != nil {
			return tx.Delete(&entities.Adres{}, *current.DomicilieadresID).Error
		}
		return nil
	}))
}

// UpdateVerblijfadres replaces the street, number, unit and place of the
// person's residential address.
func (r *Repository) UpdateVerblijfadres(ctx context.Context, persoonID uint, adres entities.Adres) error {
	var persoon entities.Persoon
	if err := r.db.WithContext(ctx).Select("id", "verblijfadres_id").First(&persoon, persoonID).Error; err != nil {
		return database.Translate(err)
	}
	if adres.PlaatsID == 0 {
		adres.PlaatsID = entities.OnbekendePlaatsID
	}
	err := r.db.WithContext(ctx).Model(&entities.Adres{}).
		Where("id = ?", persoon.VerblijfadresID).
		Updates(map[string]any{
			"straatnaam": adres.Straatnaam,
			"huisnummer": adres.Huisnummer,
			"busnummer":  adres.Busnummer,
			"plaats_id":  adres.PlaatsID,
		}).Error
	return database.Translate(err)
}

// AddSelectie merges category flags into an overig persoon's selectie.
func (r *Repository) AddSelectie(ctx context.Context, persoonID uint, selectie []entities.OverigPersoonSelectie) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entities.Persoon
		if err := tx.First(&p, persoonID).Error; err != nil {
			return err
		}
		changed := false
		for _, s := range selectie {
			if !p.HeeftSelectie(s) {
				p.Selectie = append(p.Selectie, s)
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return tx.Model(&p).Select("selectie").Updates(&p).Error
	}))
}

// Delete removes the person with its enrollments, begeleider links and
// owned addresses. An empty type matches any type.
func (r *Repository) Delete(ctx context.Context, id uint, typ entities.PersoonType) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if typ != "" {
			q = q.Where("type = ?", typ)
		}
		var p entities.Persoon
		if err := q.First(&p, id).Error; err != nil {
			return err
		}

		var aanmeldingIDs []uint
		if err := tx.Model(&entities.Aanmelding{}).Where("deelnemer_id = ?", id).Pluck("id", &aanmeldingIDs).Error; err != nil {
			return err
		}
		if len(aanmeldingIDs) > 0 {
			if err := tx.Where("aanmelding_id IN ?", aanmeldingIDs).Delete(&entities.Deelname{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entities.Aanmelding{}, aanmeldingIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM project_begeleiders WHERE persoon_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&p).Error; err != nil {
			return err
		}
		adresIDs := []uint{p.VerblijfadresID}
		if p.DomicilieadresID != nil {
			adresIDs = append(adresIDs, *p.DomicilieadresID)
		}
		return tx.Delete(&entities.Adres{}, adresIDs).Error
	}))
}

// CountByType returns the number of persons of each type.
func (r *Repository) CountByType(ctx context.Context) (map[entities.PersoonType]int64, error) {
	var rows []struct {
		Type  entities.PersoonType
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&entities.Persoon{}).
		Select("type, COUNT(*) AS count").Group("type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[entities.PersoonType]int64, len(rows))
	for _, row := range rows {
		out[row.Type] = row.Count
	}
	return out, nil
}
