// Package aanmeldingen provides database operations for enrollments
// (aanmeldingen for courses, inschrijvingen for vacations) and their
// participations.
//
// Every write that can change which enrollment comes first for a deelnemer
// recomputes the eerste_aanmelding flags in the same transaction. The flag
// is scoped per deelnemer and project type: the earliest course enrollment
// and the earliest vacation registration are flagged independently.
//
// # Usage
//
//	repo := aanmeldingen.NewRepository(db)
//	err := repo.Create(ctx, &entities.Aanmelding{DeelnemerID: 7, ProjectID: 3})
package aanmeldingen

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

// Repository handles all enrollment database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new enrollments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) ListForProject(ctx context.Context, projectID uint) ([]entities.Aanmelding, error) {
	var out []entities.Aanmelding
	err := r.db.WithContext(ctx).
		Preload("Deelnemer").
		Preload("Woonplaats").
		Preload("Deelnames").
		Where("project_id = ?", projectID).
		Order("tijdstip ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) ListForDeelnemer(ctx context.Context, deelnemerID uint) ([]entities.Aanmelding, error) {
	var out []entities.Aanmelding
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Deelnames").
		Where("deelnemer_id = ?", deelnemerID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Aanmelding, error) {
	var a entities.Aanmelding
	err := r.db.WithContext(ctx).
		Preload("Deelnemer").
		Preload("Project").
		Preload("Woonplaats").
		Preload("Deelnames").
		First(&a, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &a, nil
}

// Create inserts the enrollment with its participations. The home place
// snapshot is taken from the deelnemer when WoonplaatsID is unset.
func (r *Repository) Create(ctx context.Context, a *entities.Aanmelding) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deelnemer entities.Persoon
		err := tx.Preload("Verblijfadres").Preload("Domicilieadres").
			Where("type = ?", entities.PersoonTypeDeelnemer).
			First(&deelnemer, a.DeelnemerID).Error
		if err != nil {
			return err
		}

		var project entities.Project
		if err := tx.First(&project, a.ProjectID).Error; err != nil {
			return err
		}

		if a.WoonplaatsID == 0 {
			a.WoonplaatsID = deelnemer.Woonplaats()
		}
		if a.Tijdstip.IsZero() {
			a.Tijdstip = r.now()
		}
		if a.Status == "" {
			a.Status = entities.AanmeldingStatusAangemeld
		}
		if !a.Status.Valid() {
			return fmt.Errorf("%w: status %q", database.ErrInvalid, a.Status)
		}
		a.EersteAanmelding = false

		if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
			return err
		}
		if err := insertDeelnames(tx, a.ID, project.ID, a.Deelnames); err != nil {
			return err
		}
		if err := recompute(tx, a.DeelnemerID, project.Type); err != nil {
			return err
		}
		return tx.Model(&entities.Aanmelding{}).
			Select("eerste_aanmelding").
			Where("id = ?", a.ID).
			Scan(&a.EersteAanmelding).Error
	}))
}

// UpdateStatus changes the status; cancelled enrollments never count as
// first, so the flags are recomputed.
func (r *Repository) UpdateStatus(ctx context.Context, id uint, status entities.AanmeldingStatus) (*entities.Aanmelding, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", database.ErrInvalid, status)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, typ, err := loadWithType(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(a).Update("status", status).Error; err != nil {
			return err
		}
		return recompute(tx, a.DeelnemerID, typ)
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return r.GetByID(ctx, id)
}

// ReplaceDeelnames swaps the participations of an enrollment. They decide
// when the enrollment starts, so the flags are recomputed.
func (r *Repository) ReplaceDeelnames(ctx context.Context, id uint, deelnames []entities.Deelname) (*entities.Aanmelding, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, typ, err := loadWithType(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("aanmelding_id = ?", id).Delete(&entities.Deelname{}).Error; err != nil {
			return err
		}
		if err := insertDeelnames(tx, a.ID, a.ProjectID, deelnames); err != nil {
			return err
		}
		return recompute(tx, a.DeelnemerID, typ)
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the enrollment and hands the first-enrollment flag to the
// next one in line.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, typ, err := loadWithType(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("aanmelding_id = ?", id).Delete(&entities.Deelname{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(a).Error; err != nil {
			return err
		}
		return recompute(tx, a.DeelnemerID, typ)
	}))
}

// Recompute re-derives the first-enrollment flags of one deelnemer for one
// project type.
func (r *Repository) Recompute(ctx context.Context, deelnemerID uint, typ entities.ProjectType) error {
	return database.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recompute(tx, deelnemerID, typ)
	}))
}

func loadWithType(tx *gorm.DB, id uint) (*entities.Aanmelding, entities.ProjectType, error) {
	var a entities.Aanmelding
	if err := tx.Preload("Project").First(&a, id).Error; err != nil {
		return nil, "", err
	}
	return &a, a.Project.Type, nil
}

func insertDeelnames(tx *gorm.DB, aanmeldingID, projectID uint, deelnames []entities.Deelname) error {
	if len(deelnames) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(deelnames))
	for i := range deelnames {
		d := &deelnames[i]
		if d.EffectieveDeelnamePerunage < 0 || d.EffectieveDeelnamePerunage > 1 {
			return fmt.Errorf("%w: perunage %v outside [0, 1]", database.ErrInvalid, d.EffectieveDeelnamePerunage)
		}
		d.ID = 0
		d.AanmeldingID = aanmeldingID
		ids = append(ids, d.ActiviteitID)
	}

	var owned int64
	if err := tx.Model(&entities.Activiteit{}).
		Where("id IN ? AND project_id = ?", ids, projectID).
		Count(&owned).Error; err != nil {
		return err
	}
	if int(owned) != len(uniq(ids)) {
		return fmt.Errorf("%w: activiteit does not belong to project %d", database.ErrInvalid, projectID)
	}

	return tx.Create(&deelnames).Error
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// An enrollment starts at the earliest activity it takes part in. Without
// deelnames it falls back to the start of its project.
const firstEnrollmentQuery = `
SELECT a.id
FROM aanmeldingen a
JOIN projecten p ON p.id = a.project_id
LEFT JOIN (
	SELECT d.aanmelding_id, MIN(act.van) AS start
	FROM deelnames d
	JOIN activiteiten act ON act.id = d.activiteit_id
	GROUP BY d.aanmelding_id
) e ON e.aanmelding_id = a.id
LEFT JOIN (
	SELECT project_id, MIN(van) AS start
	FROM activiteiten
	GROUP BY project_id
) s ON s.project_id = a.project_id
WHERE a.deelnemer_id = ? AND p.type = ? AND a.status <> ?
ORDER BY CASE WHEN COALESCE(e.start, s.start) IS NULL THEN 1 ELSE 0 END,
	COALESCE(e.start, s.start) ASC, a.id ASC
LIMIT 1`

// recompute flags the enrollment that starts first and clears the flag on
// every other enrollment of the deelnemer in projects of that type.
func recompute(tx *gorm.DB, deelnemerID uint, typ entities.ProjectType) error {
	var firstIDs []uint
	if err := tx.Raw(firstEnrollmentQuery, deelnemerID, typ, entities.AanmeldingStatusGeannuleerd).
		Scan(&firstIDs).Error; err != nil {
		return err
	}

	scope := tx.Model(&entities.Aanmelding{}).
		Where("deelnemer_id = ? AND project_id IN (?)", deelnemerID,
			tx.Model(&entities.Project{}).Select("id").Where("type = ?", typ))

	if len(firstIDs) == 0 {
		return scope.Update("eerste_aanmelding", false).Error
	}

	first := firstIDs[0]
	if err := scope.Session(&gorm.Session{}).Where("id <> ?", first).Update("eerste_aanmelding", false).Error; err != nil {
		return err
	}
	return tx.Model(&entities.Aanmelding{}).Where("id = ?", first).Update("eerste_aanmelding", true).Error
}
