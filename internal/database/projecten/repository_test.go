package projecten

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCursus(nummer string, van time.Time) *entities.Project {
	return &entities.Project{
		Type:          entities.ProjectTypeCursus,
		Projectnummer: nummer,
		Naam:          "Goed in je vel",
		Jaar:          van.Year(),
		Prijs:         decimal.NewNullDecimal(decimal.RequireFromString("85.50")),
		Activiteiten:  []entities.Activiteit{{Van: van, TotEnMet: van.AddDate(0, 0, 2)}},
	}
}

func createPersoon(t *testing.T, db *gorm.DB, typ entities.PersoonType) *entities.Persoon {
	t.Helper()
	adres := entities.OnbekendAdres()
	require.NoError(t, db.Create(&adres).Error)
	p := &entities.Persoon{Type: typ, Voornaam: "Els", Achternaam: "Wouters", VerblijfadresID: adres.ID}
	require.NoError(t, db.Omit("Verblijfadres", "Domicilieadres").Create(p).Error)
	return p
}

func TestRepository_Create(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	p := newCursus("DK/22/090", day(2022, 1, 10))
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)
	require.Len(t, p.Activiteiten, 1)
	assert.Equal(t, p.ID, p.Activiteiten[0].ProjectID)

	stored, err := repo.GetByProjectnummer(ctx, "DK/22/090")
	require.NoError(t, err)
	assert.Equal(t, p.ID, stored.ID)
	assert.True(t, stored.Prijs.Valid)
	assert.Equal(t, "85.5", stored.Prijs.Decimal.String())
	assert.False(t, stored.Voorschot.Valid)
	assert.True(t, day(2022, 1, 10).Equal(stored.Start()))
}

func TestRepository_Create_DuplicateProjectnummer(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newCursus("DK/22/090", day(2022, 1, 10))))

	err := repo.Create(ctx, newCursus("DK/22/090", day(2022, 2, 10)))
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRepository_List(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newCursus("DK/21/001", day(2021, 5, 1))))
	require.NoError(t, repo.Create(ctx, newCursus("DK/22/090", day(2022, 1, 10))))
	vakantie := newCursus("VK/22/01", day(2022, 7, 1))
	vakantie.Type = entities.ProjectTypeVakantie
	require.NoError(t, repo.Create(ctx, vakantie))

	cursussen, total, err := repo.List(ctx, Filter{Type: entities.ProjectTypeCursus})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "DK/22/090", cursussen[0].Projectnummer)
	assert.Len(t, cursussen[0].Activiteiten, 1)

	_, total, err = repo.List(ctx, Filter{Jaar: 2022})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	found, _, err := repo.List(ctx, Filter{Query: "vk/22"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entities.ProjectTypeVakantie, found[0].Type)
}

func TestRepository_AddActiviteit(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	p := newCursus("DK/22/090", day(2022, 2, 10))
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.AddActiviteit(ctx, &entities.Activiteit{ProjectID: p.ID, Van: day(2022, 1, 5), TotEnMet: day(2022, 1, 5)}))

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored.Activiteiten, 2)
	assert.True(t, day(2022, 1, 5).Equal(stored.Activiteiten[0].Van), "activities are ordered by start")

	err = repo.AddActiviteit(ctx, &entities.Activiteit{ProjectID: 999, Van: day(2022, 1, 5)})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_AddBegeleider(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	p := newCursus("VK/22/01", day(2022, 7, 1))
	p.Type = entities.ProjectTypeVakantie
	require.NoError(t, repo.Create(ctx, p))
	begeleider := createPersoon(t, db, entities.PersoonTypeOverigPersoon)

	require.NoError(t, repo.AddBegeleider(ctx, p.ID, begeleider.ID))

	err := repo.AddBegeleider(ctx, p.ID, begeleider.ID)
	assert.ErrorIs(t, err, database.ErrDuplicate)

	err = repo.AddBegeleider(ctx, p.ID, 999)
	assert.ErrorIs(t, err, database.ErrNotFound)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored.Begeleiders, 1)
	assert.Equal(t, "Wouters", stored.Begeleiders[0].Achternaam)

	count, err := repo.CountBegeleidingen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_SetLocatie(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	p := newCursus("DK/22/090", day(2022, 1, 10))
	require.NoError(t, repo.Create(ctx, p))

	adres := entities.OnbekendAdres()
	require.NoError(t, db.Create(&adres).Error)
	locatie := &entities.Locatie{Naam: "Zaal Kei", AdresID: adres.ID}
	require.NoError(t, db.Omit("Adres").Create(locatie).Error)

	require.NoError(t, repo.SetLocatie(ctx, p.ID, locatie.ID))
	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Locatie)
	assert.Equal(t, "Zaal Kei", stored.Locatie.Naam)

	assert.ErrorIs(t, repo.SetLocatie(ctx, 999, locatie.ID), database.ErrNotFound)
}

func TestRepository_Delete_Cascades(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	p := newCursus("DK/22/090", day(2022, 1, 10))
	require.NoError(t, repo.Create(ctx, p))
	begeleider := createPersoon(t, db, entities.PersoonTypeOverigPersoon)
	require.NoError(t, repo.AddBegeleider(ctx, p.ID, begeleider.ID))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	var activiteiten int64
	require.NoError(t, db.Model(&entities.Activiteit{}).Count(&activiteiten).Error)
	assert.Zero(t, activiteiten)

	count, err := repo.CountBegeleidingen(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_Update(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	p := newCursus("DK/22/090", day(2022, 1, 10))
	require.NoError(t, repo.Create(ctx, p))

	update := &entities.Project{
		ID:            p.ID,
		Type:          entities.ProjectTypeCursus,
		Projectnummer: "DK/22/090",
		Naam:          "Sterk in je vel",
		Jaar:          2022,
	}
	require.NoError(t, repo.Update(ctx, update))

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sterk in je vel", stored.Naam)
	assert.Len(t, stored.Activiteiten, 1, "activities are untouched")

	assert.ErrorIs(t, repo.Update(ctx, &entities.Project{ID: 999}), database.ErrNotFound)
}
