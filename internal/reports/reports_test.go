package reports

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/database/aanmeldingen"
	"github.com/vzwadmin/beheer/internal/database/projecten"
	"github.com/vzwadmin/beheer/internal/database/rapportages"
	"github.com/vzwadmin/beheer/internal/entities"
)

func setupTestDB(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(database.Options{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(rapportages.NewRepository(db.DB)), db.DB
}

// seed creates two deelnemers in Antwerpen and Limburg, a 2022 course with
// both enrolled (one cancelled) and a 2023 vacation with one volunteer.
func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	antwerpen := &entities.Plaats{Postcode: "2000", Deelgemeente: "Antwerpen", Provincie: entities.ProvincieAntwerpen}
	hasselt := &entities.Plaats{Postcode: "3500", Deelgemeente: "Hasselt", Provincie: entities.ProvincieLimburg}
	require.NoError(t, db.Create(antwerpen).Error)
	require.NoError(t, db.Create(hasselt).Error)

	persoon := func(typ entities.PersoonType, plaatsID uint) *entities.Persoon {
		adres := entities.Adres{Straatnaam: "Straat", PlaatsID: plaatsID}
		require.NoError(t, db.Create(&adres).Error)
		p := &entities.Persoon{Type: typ, Voornaam: "X", VerblijfadresID: adres.ID}
		require.NoError(t, db.Omit("Verblijfadres", "Domicilieadres").Create(p).Error)
		return p
	}
	jan := persoon(entities.PersoonTypeDeelnemer, antwerpen.ID)
	an := persoon(entities.PersoonTypeDeelnemer, hasselt.ID)
	els := persoon(entities.PersoonTypeOverigPersoon, antwerpen.ID)

	cursus := &entities.Project{
		Type: entities.ProjectTypeCursus, Projectnummer: "DK/22/090", Naam: "Goed in je vel", Jaar: 2022,
		Organisatieonderdeel: entities.OrganisatieonderdeelDeKei,
		Activiteiten: []entities.Activiteit{
			{Van: time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)},
			{Van: time.Date(2022, 1, 17, 0, 0, 0, 0, time.UTC)},
		},
	}
	vakantie := &entities.Project{
		Type: entities.ProjectTypeVakantie, Projectnummer: "VK/23/01", Naam: "Zeeklassen", Jaar: 2023,
		Organisatieonderdeel: entities.OrganisatieonderdeelVakanties,
		Activiteiten:         []entities.Activiteit{{Van: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)}},
	}
	require.NoError(t, db.Create(cursus).Error)
	require.NoError(t, db.Create(vakantie).Error)
	require.NoError(t, projecten.NewRepository(db).AddBegeleider(ctx, vakantie.ID, els.ID))

	repo := aanmeldingen.NewRepository(db)
	require.NoError(t, repo.Create(ctx, &entities.Aanmelding{
		DeelnemerID: jan.ID, ProjectID: cursus.ID, Status: entities.AanmeldingStatusBevestigd,
		Deelnames: []entities.Deelname{
			{ActiviteitID: cursus.Activiteiten[0].ID, EffectieveDeelnamePerunage: 1},
			{ActiviteitID: cursus.Activiteiten[1].ID, EffectieveDeelnamePerunage: 0.5},
		},
	}))
	require.NoError(t, repo.Create(ctx, &entities.Aanmelding{
		DeelnemerID: an.ID, ProjectID: cursus.ID, Status: entities.AanmeldingStatusGeannuleerd,
	}))
	require.NoError(t, repo.Create(ctx, &entities.Aanmelding{
		DeelnemerID: an.ID, ProjectID: vakantie.ID, Status: entities.AanmeldingStatusBevestigd,
	}))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		AanmeldingenPerProvincie,
		ActiviteitenBezetting,
		DeelnemersPerOrganisatieonderdeel,
		VrijwilligersPerVakantie,
	}, Names())
	assert.Equal(t, "Vrijwilligers per vakantie", Title(VrijwilligersPerVakantie))
}

func TestService_Run_AanmeldingenPerProvincie(t *testing.T) {
	svc, db := setupTestDB(t)
	seed(t, db)

	tests := []struct {
		name   string
		filter Filter
		want   [][]any
	}{
		{
			name:   "all years, cancelled excluded",
			filter: Filter{},
			want: [][]any{
				{"Antwerpen", "cursus", int64(1), int64(1)},
				{"Limburg", "vakantie", int64(1), int64(1)},
			},
		},
		{
			name:   "single year",
			filter: Filter{Jaar: 2023},
			want:   [][]any{{"Limburg", "vakantie", int64(1), int64(1)}},
		},
		{
			name:   "year without data",
			filter: Filter{Jaar: 2019},
			want:   [][]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := svc.Run(context.Background(), AanmeldingenPerProvincie, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, []string{"provincie", "type", "aanmeldingen", "deelnemers"}, table.Columns)
			assert.Equal(t, tt.want, table.Rows)
		})
	}
}

func TestService_Run_ActiviteitenBezetting(t *testing.T) {
	svc, db := setupTestDB(t)
	seed(t, db)

	table, err := svc.Run(context.Background(), ActiviteitenBezetting, Filter{Jaar: 2022})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "DK/22/090", row[0])
	assert.Equal(t, int64(1), row[2])
	assert.Equal(t, int64(2), row[3])
	assert.InDelta(t, 0.75, row[4], 1e-9)
}

func TestService_Run_DeelnemersPerOrganisatieonderdeel(t *testing.T) {
	svc, db := setupTestDB(t)
	seed(t, db)

	table, err := svc.Run(context.Background(), DeelnemersPerOrganisatieonderdeel, Filter{})
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"deKei", int64(1), int64(1)},
		{"vakanties", int64(1), int64(1)},
	}, table.Rows)
}

func TestService_Run_VrijwilligersPerVakantie(t *testing.T) {
	svc, db := setupTestDB(t)
	seed(t, db)

	table, err := svc.Run(context.Background(), VrijwilligersPerVakantie, Filter{})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"VK/23/01", "Zeeklassen", int64(1)}}, table.Rows)
}

func TestService_Run_Unknown(t *testing.T) {
	svc, _ := setupTestDB(t)

	_, err := svc.Run(context.Background(), "omzet", Filter{})
	assert.ErrorIs(t, err, ErrUnknownReport)
}

func TestWriteXLSX(t *testing.T) {
	table := &rapportages.Table{
		Columns: []string{"provincie", "aanmeldingen"},
		Rows: [][]any{
			{"Antwerpen", int64(12)},
			{"Limburg", int64(3)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "deelnemers-per-organisatieonderdeel", table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "deelnemers-per-organisatieonder"
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"provincie", "aanmeldingen"},
		{"Antwerpen", "12"},
		{"Limburg", "3"},
	}, rows)
}
