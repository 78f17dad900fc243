package personen

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(database.Options{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db.DB
}

func newDeelnemer(voornaam, achternaam string) *entities.Persoon {
	return &entities.Persoon{
		Type:          entities.PersoonTypeDeelnemer,
		Voornaam:      voornaam,
		Achternaam:    achternaam,
		Verblijfadres: entities.Adres{Straatnaam: "Meirstraat", Huisnummer: "12"},
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	p := newDeelnemer("Jan", "Peeters")
	geboren := time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC)
	p.Geboortedatum = &geboren
	p.Domicilieadres = &entities.Adres{Straatnaam: "Kerkstraat", Huisnummer: "1", PlaatsID: entities.OnbekendePlaatsID}

	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.NotZero(t, p.VerblijfadresID)
	require.NotNil(t, p.DomicilieadresID)

	stored, err := repo.GetByID(ctx, p.ID, entities.PersoonTypeDeelnemer)
	require.NoError(t, err)
	assert.Equal(t, "Meirstraat", stored.Verblijfadres.Straatnaam)
	assert.Equal(t, entities.OnbekendePlaatsID, stored.Verblijfadres.PlaatsID)
	assert.Equal(t, entities.OnbekendePostcode, stored.Verblijfadres.Plaats.Postcode)
	assert.Equal(t, "Kerkstraat", stored.Domicilieadres.Straatnaam)
	assert.Equal(t, entities.GeslachtOnbekend, stored.Geslacht)
	assert.True(t, geboren.Equal(*stored.Geboortedatum))
}

func TestRepository_GetByID_WrongType(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	p := newDeelnemer("Jan", "Peeters")
	require.NoError(t, repo.Create(ctx, p))

	_, err := repo.GetByID(ctx, p.ID, entities.PersoonTypeOverigPersoon)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = repo.GetByID(ctx, p.ID, "")
	assert.NoError(t, err)
}

func TestRepository_List(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newDeelnemer("Jan", "Peeters")))
	require.NoError(t, repo.Create(ctx, newDeelnemer("An", "Maes")))

	vrijwilliger := newDeelnemer("Els", "Wouters")
	vrijwilliger.Type = entities.PersoonTypeOverigPersoon
	vrijwilliger.Selectie = []entities.OverigPersoonSelectie{entities.SelectieVrijwilliger}
	require.NoError(t, repo.Create(ctx, vrijwilliger))

	deelnemers, total, err := repo.List(ctx, Filter{Type: entities.PersoonTypeDeelnemer})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Maes", deelnemers[0].Achternaam)

	found, total, err := repo.List(ctx, Filter{Type: entities.PersoonTypeDeelnemer, Query: "peet"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Jan", found[0].Voornaam)

	paged, total, err := repo.List(ctx, Filter{Type: entities.PersoonTypeDeelnemer, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, paged, 1)
	assert.Equal(t, "Peeters", paged[0].Achternaam)

	vrijwilligers, _, err := repo.List(ctx, Filter{Selectie: entities.SelectieVrijwilliger})
	require.NoError(t, err)
	require.Len(t, vrijwilligers, 1)
	assert.Equal(t, "Wouters", vrijwilligers[0].Achternaam)
}

func TestRepository_Update_RemovesDomicile(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	p := newDeelnemer("Jan", "Peeters")
	p.Domicilieadres = &entities.Adres{Straatnaam: "Kerkstraat", Huisnummer: "1"}
	p.Domicilieadres.PlaatsID = entities.OnbekendePlaatsID
	require.NoError(t, repo.Create(ctx, p))
	domicilieID := *p.DomicilieadresID

	update := newDeelnemer("Jan", "Peeters-Maes")
	update.ID = p.ID
	update.Verblijfadres.Huisnummer = "14"
	require.NoError(t, repo.Update(ctx, update))

	stored, err := repo.GetByID(ctx, p.ID, entities.PersoonTypeDeelnemer)
	require.NoError(t, err)
	assert.Equal(t, "Peeters-Maes", stored.Achternaam)
	assert.Equal(t, "14", stored.Verblijfadres.Huisnummer)
	assert.Equal(t, p.VerblijfadresID, stored.VerblijfadresID)
	assert.Nil(t, stored.DomicilieadresID)

	var count int64
	require.NoError(t, db.Model(&entities.Adres{}).Where("id = ?", domicilieID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepository_UpdateVerblijfadres(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	p := newDeelnemer("Jan", "Peeters")
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.UpdateVerblijfadres(ctx, p.ID, entities.Adres{Straatnaam: "Nieuwstraat", Huisnummer: "3", Busnummer: "2"}))

	stored, err := repo.GetByID(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Nieuwstraat", stored.Verblijfadres.Straatnaam)
	assert.Equal(t, "2", stored.Verblijfadres.Busnummer)

	err = repo.UpdateVerblijfadres(ctx, 999, entities.Adres{})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_AddSelectie(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	p := newDeelnemer("Els", "Wouters")
	p.Type = entities.PersoonTypeOverigPersoon
	p.Selectie = []entities.OverigPersoonSelectie{entities.SelectieVrijwilliger}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.AddSelectie(ctx, p.ID, []entities.OverigPersoonSelectie{
		entities.SelectieDonateur, entities.SelectieVrijwilliger,
	}))

	stored, err := repo.GetByID(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []entities.OverigPersoonSelectie{entities.SelectieVrijwilliger, entities.SelectieDonateur}, stored.Selectie)
}

func TestRepository_Delete_RemovesOwnedRows(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	p := newDeelnemer("Jan", "Peeters")
	require.NoError(t, repo.Create(ctx, p))

	project := &entities.Project{Type: entities.ProjectTypeCursus, Projectnummer: "DK/22/090"}
	require.NoError(t, db.Create(project).Error)
	activiteit := &entities.Activiteit{ProjectID: project.ID, Van: time.Now(), TotEnMet: time.Now()}
	require.NoError(t, db.Create(activiteit).Error)
	aanmelding := &entities.Aanmelding{
		DeelnemerID:  p.ID,
		ProjectID:    project.ID,
		Status:       entities.AanmeldingStatusBevestigd,
		WoonplaatsID: entities.OnbekendePlaatsID,
		Tijdstip:     time.Now(),
	}
	require.NoError(t, db.Create(aanmelding).Error)
	require.NoError(t, db.Create(&entities.Deelname{AanmeldingID: aanmelding.ID, ActiviteitID: activiteit.ID, EffectieveDeelnamePerunage: 1}).Error)

	require.NoError(t, repo.Delete(ctx, p.ID, entities.PersoonTypeDeelnemer))

	for _, model := range []any{&entities.Persoon{}, &entities.Adres{}, &entities.Aanmelding{}, &entities.Deelname{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}

	err := repo.Delete(ctx, p.ID, entities.PersoonTypeDeelnemer)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_CountByType(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newDeelnemer("Jan", "Peeters")))
	overig := newDeelnemer("Els", "Wouters")
	overig.Type = entities.PersoonTypeOverigPersoon
	require.NoError(t, repo.Create(ctx, overig))

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entities.PersoonTypeDeelnemer])
	assert.Equal(t, int64(1), counts[entities.PersoonTypeOverigPersoon])
}
