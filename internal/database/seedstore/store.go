// Package seedstore adapts the repositories to the importers.Store the
// seeding pipeline writes through. Passing a transaction handle makes the
// whole run transactional (used by dry runs).
//
// # Usage
//
//	store := seedstore.New(db.DB)
//	pipeline := importers.NewPipeline(store, sink, opts)
package seedstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/vzwadmin/beheer/internal/database/aanmeldingen"
	"github.com/vzwadmin/beheer/internal/database/locaties"
	"github.com/vzwadmin/beheer/internal/database/organisaties"
	"github.com/vzwadmin/beheer/internal/database/personen"
	"github.com/vzwadmin/beheer/internal/database/plaatsen"
	"github.com/vzwadmin/beheer/internal/database/projecten"
	"github.com/vzwadmin/beheer/internal/entities"
	"github.com/vzwadmin/beheer/internal/importers"
)

type Store struct {
	db           *gorm.DB
	plaatsen     *plaatsen.Repository
	personen     *personen.Repository
	organisaties *organisaties.Repository
	locaties     *locaties.Repository
	projecten    *projecten.Repository
	aanmeldingen *aanmeldingen.Repository
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		plaatsen:     plaatsen.NewRepository(db),
		personen:     personen.NewRepository(db),
		organisaties: organisaties.NewRepository(db),
		locaties:     locaties.NewRepository(db),
		projecten:    projecten.NewRepository(db),
		aanmeldingen: aanmeldingen.NewRepository(db),
	}
}

func (s *Store) Counts(ctx context.Context) (importers.Counts, error) {
	var c importers.Counts
	db := s.db.WithContext(ctx)

	counters := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&c.Plaatsen, db.Model(&entities.Plaats{})},
		{&c.Deelnemers, db.Model(&entities.Persoon{}).Where("type = ?", entities.PersoonTypeDeelnemer)},
		{&c.OverigePersonen, db.Model(&entities.Persoon{}).Where("type = ?", entities.PersoonTypeOverigPersoon)},
		{&c.Organisaties, db.Model(&entities.Organisatie{})},
		{&c.Locaties, db.Model(&entities.Locatie{})},
		{&c.Cursussen, db.Model(&entities.Project{}).Where("type = ?", entities.ProjectTypeCursus)},
		{&c.Vakanties, db.Model(&entities.Project{}).Where("type = ?", entities.ProjectTypeVakantie)},
		{&c.Activiteiten, db.Model(&entities.Activiteit{})},
		{&c.Aanmeldingen, db.Model(&entities.Aanmelding{})},
		{&c.Deelnames, db.Model(&entities.Deelname{})},
		{&c.Begeleidingen, db.Table("project_begeleiders")},
	}
	for _, counter := range counters {
		if err := counter.query.Count(counter.dst).Error; err != nil {
			return importers.Counts{}, err
		}
	}
	return c, nil
}

func (s *Store) Plaatsen(ctx context.Context) ([]entities.Plaats, error) {
	return s.plaatsen.All(ctx)
}

func (s *Store) InsertPlaatsen(ctx context.Context, p []entities.Plaats) (int64, error) {
	return s.plaatsen.InsertMissing(ctx, p)
}

func (s *Store) UpdatePlaats(ctx context.Context, p *entities.Plaats) error {
	return s.plaatsen.Update(ctx, p)
}

func (s *Store) CreatePersoon(ctx context.Context, p *entities.Persoon) error {
	return s.personen.Create(ctx, p)
}

func (s *Store) AddSelectie(ctx context.Context, persoonID uint, selectie []entities.OverigPersoonSelectie) error {
	return s.personen.AddSelectie(ctx, persoonID, selectie)
}

func (s *Store) UpdateVerblijfadres(ctx context.Context, persoonID uint, adres entities.Adres) error {
	return s.personen.UpdateVerblijfadres(ctx, persoonID, adres)
}

func (s *Store) DeletePersoon(ctx context.Context, persoonID uint) error {
	return s.personen.Delete(ctx, persoonID, "")
}

func (s *Store) CreateOrganisatie(ctx context.Context, o *entities.Organisatie) error {
	return s.organisaties.Create(ctx, o)
}

func (s *Store) CreateLocatie(ctx context.Context, l *entities.Locatie) error {
	return s.locaties.Create(ctx, l)
}

func (s *Store) CreateProject(ctx context.Context, p *entities.Project) error {
	return s.projecten.Create(ctx, p)
}

func (s *Store) AddActiviteit(ctx context.Context, a *entities.Activiteit) error {
	return s.projecten.AddActiviteit(ctx, a)
}

func (s *Store) SetProjectLocatie(ctx context.Context, projectID, locatieID uint) error {
	return s.projecten.SetLocatie(ctx, projectID, locatieID)
}

func (s *Store) AddBegeleider(ctx context.Context, projectID, persoonID uint) error {
	return s.projecten.AddBegeleider(ctx, projectID, persoonID)
}

func (s *Store) CreateAanmelding(ctx context.Context, a *entities.Aanmelding) error {
	return s.aanmeldingen.Create(ctx, a)
}
