package importers

import (
	"context"

	"github.com/vzwadmin/beheer/internal/entities"
)

// Counts is a row count snapshot of the destination tables, taken before
// and after every stage to verify what the stage claims to have written.
type Counts struct {
	Plaatsen        int64 `json:"plaatsen"`
	Deelnemers      int64 `json:"deelnemers"`
	OverigePersonen int64 `json:"overige_personen"`
	Organisaties    int64 `json:"organisaties"`
	Locaties        int64 `json:"locaties"`
	Cursussen       int64 `json:"cursussen"`
	Vakanties       int64 `json:"vakanties"`
	Activiteiten    int64 `json:"activiteiten"`
	Aanmeldingen    int64 `json:"aanmeldingen"`
	Deelnames       int64 `json:"deelnames"`
	Begeleidingen   int64 `json:"begeleidingen"`
}

// Store is the destination the pipeline writes to.
//
// Implementations must report unique constraint violations as an error
// matching database.ErrDuplicate; the pipeline turns those into record
// level diagnostics. Any other error aborts the run.
type Store interface {
	Counts(ctx context.Context) (Counts, error)

	Plaatsen(ctx context.Context) ([]entities.Plaats, error)
	// InsertPlaatsen inserts places in batches, skipping conflicts, and
	// returns the number of rows actually written.
	InsertPlaatsen(ctx context.Context, plaatsen []entities.Plaats) (int64, error)
	UpdatePlaats(ctx context.Context, plaats *entities.Plaats) error

	CreatePersoon(ctx context.Context, persoon *entities.Persoon) error
	AddSelectie(ctx context.Context, persoonID uint, selectie []entities.OverigPersoonSelectie) error
	UpdateVerblijfadres(ctx context.Context, persoonID uint, adres entities.Adres) error
	DeletePersoon(ctx context.Context, persoonID uint) error

	CreateOrganisatie(ctx context.Context, organisatie *entities.Organisatie) error
	CreateLocatie(ctx context.Context, locatie *entities.Locatie) error

	CreateProject(ctx context.Context, project *entities.Project) error
	AddActiviteit(ctx context.Context, activiteit *entities.Activiteit) error
	SetProjectLocatie(ctx context.Context, projectID, locatieID uint) error
	AddBegeleider(ctx context.Context, projectID, persoonID uint) error

	// CreateAanmelding inserts the enrollment with its participations and
	// recomputes the first-enrollment flags of the deelnemer atomically.
	CreateAanmelding(ctx context.Context, aanmelding *entities.Aanmelding) error
}
