// Package projecten provides database operations for courses and vacations,
// their activities and their begeleiders.
//
// # Usage
//
//	repo := projecten.NewRepository(db)
//	cursussen, total, err := repo.List(ctx, projecten.Filter{Type: entities.ProjectTypeCursus, Jaar: 2022})
package projecten

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

type Filter struct {
	Type   entities.ProjectType
	Jaar   int
	Query  string
	Limit  int
	Offset int
}

// Repository handles all project database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new projects repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderedActiviteiten(db *gorm.DB) *gorm.DB {
	return db.Order("van ASC, id ASC")
}

func (r *Repository) List(ctx context.Context, f Filter) ([]entities.Project, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Project{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Jaar != 0 {
		q = q.Where("jaar = ?", f.Jaar)
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("LOWER(naam) LIKE LOWER(?) OR LOWER(projectnummer) LIKE LOWER(?)", pattern, pattern)
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

	var projecten []entities.Project
	err := q.Preload("Activiteiten", orderedActiviteiten).
		Order("jaar DESC, projectnummer ASC").
		Find(&projecten).Error
	return projecten, total, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Project, error) {
	var p entities.Project
	err := r.db.WithContext(ctx).
		Preload("Activiteiten", orderedActiviteiten).
		Preload("Locatie.Adres.Plaats").
		Preload("Begeleiders").
		First(&p, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &p, nil
}

func (r *Repository) GetByProjectnummer(ctx context.Context, nummer string) (*entities.Project, error) {
	var p entities.Project
	err := r.db.WithContext(ctx).Preload("Activiteiten", orderedActiviteiten).
		Where("projectnummer = ?", nummer).First(&p).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &p, nil
}

// Create inserts the project with its activities.
func (r *Repository) Create(ctx context.Context, p *entities.Project) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		for i := range p.Activiteiten {
			p.Activiteiten[i].ProjectID = p.ID
		}
		if len(p.Activiteiten) > 0 {
			if err := tx.Create(&p.Activiteiten).Error; err != nil {
				return err
			}
		}
		for _, b := range p.Begeleiders {
			if err := linkBegeleider(tx, p.ID, b.ID); err != nil {
				return err
			}
		}
		return nil
	}))
}

// Update saves the project's own fields. Activities and begeleiders are
// managed through their dedicated methods.
func (r *Repository) Update(ctx context.Context, p *entities.Project) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.Project
		if err := tx.First(&current, p.ID).Error; err != nil {
			return err
		}
		p.CreatedAt = current.CreatedAt
		return tx.Omit(clause.Associations).Save(p).Error
	}))
}

// Delete removes the project with its activities, enrollments and
// participations.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entities.Project
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		sub := tx.Model(&entities.Aanmelding{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("aanmelding_id IN (?)", sub).Delete(&entities.Deelname{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&entities.Aanmelding{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&entities.Activiteit{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_begeleiders WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	}))
}

// AddActiviteit appends an activity to an existing project.
func (r *Repository) AddActiviteit(ctx context.Context, a *entities.Activiteit) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entities.Project
		if err := tx.Select("id").First(&p, a.ProjectID).Error; err != nil {
			return err
		}
		return tx.Create(a).Error
	}))
}

func (r *Repository) SetLocatie(ctx context.Context, projectID, locatieID uint) error {
	result := r.db.WithContext(ctx).Model(&entities.Project{}).
		Where("id = ?", projectID).
		Update("locatie_id", locatieID)
	if result.Error != nil {
		return database.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.Translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// AddBegeleider links a person as begeleider of the project. Linking the
// same person twice is reported as a duplicate.
func (r *Repository) AddBegeleider(ctx context.Context, projectID, persoonID uint) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("project_begeleiders").
			Where("project_id = ? AND persoon_id = ?", projectID, persoonID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		if err := tx.Select("id").First(&entities.Project{}, projectID).Error; err != nil {
			return err
		}
		if err := tx.Select("id").First(&entities.Persoon{}, persoonID).Error; err != nil {
			return err
		}
		return linkBegeleider(tx, projectID, persoonID)
	}))
}

func linkBegeleider(tx *gorm.DB, projectID, persoonID uint) error {
	return tx.Exec("INSERT INTO project_begeleiders (project_id, persoon_id) VALUES (?, ?)", projectID, persoonID).Error
}

func (r *Repository) CountBegeleidingen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("project_begeleiders").Count(&n).Error
	return n, err
}
