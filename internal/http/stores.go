package http

import (
	"context"

	"github.com/vzwadmin/beheer/internal/database/personen"
	"github.com/vzwadmin/beheer/internal/database/projecten"
	"github.com/vzwadmin/beheer/internal/entities"
)

// This file consolidates the store interfaces used by the HTTP controllers.
// The repositories under internal/database implement them; tests use
// in-memory fakes or the repositories over a temporary sqlite file.

type PersoonStore interface {
	List(ctx context.Context, f personen.Filter) ([]entities.Persoon, int64, error)
	GetByID(ctx context.Context, id uint, typ entities.PersoonType) (*entities.Persoon, error)
	Create(ctx context.Context, p *entities.Persoon) error
	Update(ctx context.Context, p *entities.Persoon) error
	Delete(ctx context.Context, id uint, typ entities.PersoonType) error
}

type OrganisatieStore interface {
	List(ctx context.Context, query string, limit, offset int) ([]entities.Organisatie, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.Organisatie, error)
	Create(ctx context.Context, o *entities.Organisatie) error
	Update(ctx context.Context, o *entities.Organisatie) error
	Delete(ctx context.Context, id uint) error
}

type PlaatsStore interface {
	List(ctx context.Context, query string, limit, offset int) ([]entities.Plaats, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.Plaats, error)
	Create(ctx context.Context, p *entities.Plaats) error
}

type LocatieStore interface {
	List(ctx context.Context) ([]entities.Locatie, error)
	GetByID(ctx context.Context, id uint) (*entities.Locatie, error)
	Create(ctx context.Context, l *entities.Locatie) error
	Update(ctx context.Context, l *entities.Locatie) error
	Delete(ctx context.Context, id uint) error
}

type ProjectStore interface {
	List(ctx context.Context, f projecten.Filter) ([]entities.Project, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.Project, error)
	Create(ctx context.Context, p *entities.Project) error
	Update(ctx context.Context, p *entities.Project) error
	Delete(ctx context.Context, id uint) error
	AddActiviteit(ctx context.Context, a *entities.Activiteit) error
	AddBegeleider(ctx context.Context, projectID, persoonID uint) error
}

type AanmeldingStore interface {
	ListForProject(ctx context.Context, projectID uint) ([]entities.Aanmelding, error)
	ListForDeelnemer(ctx context.Context, deelnemerID uint) ([]entities.Aanmelding, error)
	GetByID(ctx context.Context, id uint) (*entities.Aanmelding, error)
	Create(ctx context.Context, a *entities.Aanmelding) error
	UpdateStatus(ctx context.Context, id uint, status entities.AanmeldingStatus) (*entities.Aanmelding, error)
	ReplaceDeelnames(ctx context.Context, id uint, deelnames []entities.Deelname) (*entities.Aanmelding, error)
	Delete(ctx context.Context, id uint) error
}

type ImportRunStore interface {
	List(ctx context.Context, limit int) ([]entities.ImportRun, error)
	GetByID(ctx context.Context, id string) (*entities.ImportRun, error)
}
