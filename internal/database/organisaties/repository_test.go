package organisaties

import (
	"context"
	"path/filepath"
	"testing"

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

func newOrganisatie(naam string) *entities.Organisatie {
	return &entities.Organisatie{
		Naam:  naam,
		Adres: &entities.Adres{Straatnaam: "Stationsstraat", Huisnummer: "10"},
		Contactpersonen: []entities.Contactpersoon{
			{Naam: "An Janssens", Email: "an@example.org"},
			{Naam: "Piet Claes"},
		},
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	o := newOrganisatie("Welzijnsschakel")
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Adres)
	assert.Equal(t, entities.OnbekendePlaatsID, got.Adres.PlaatsID)
	assert.Len(t, got.Contactpersonen, 2)

	assert.ErrorIs(t, repo.Create(ctx, newOrganisatie("Welzijnsschakel")), database.ErrDuplicate)
}

func TestRepository_List(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	for _, naam := range []string{"Zonnebloem", "Armoede Overleg", "Welzijnsschakel"} {
		require.NoError(t, repo.Create(ctx, &entities.Organisatie{Naam: naam}))
	}

	tests := []struct {
		name   string
		query  string
		limit  int
		offset int
		want   []string
		total  int64
	}{
		{"all sorted", "", 0, 0, []string{"Armoede Overleg", "Welzijnsschakel", "Zonnebloem"}, 3},
		{"query is case insensitive", "ZON", 0, 0, []string{"Zonnebloem"}, 1},
		{"paged", "", 1, 1, []string{"Welzijnsschakel"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := repo.List(ctx, tt.query, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			var names []string
			for _, o := range list {
				names = append(names, o.Naam)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestRepository_Update_ReplacesContactsAndDropsAddress(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	o := newOrganisatie("Welzijnsschakel")
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, repo.Update(ctx, &entities.Organisatie{
		ID:              o.ID,
		Naam:            "Welzijnsschakel Noord",
		Contactpersonen: []entities.Contactpersoon{{Naam: "Lies Maes"}},
	}))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welzijnsschakel Noord", got.Naam)
	assert.Nil(t, got.Adres)
	require.Len(t, got.Contactpersonen, 1)
	assert.Equal(t, "Lies Maes", got.Contactpersonen[0].Naam)

	var adressen int64
	require.NoError(t, db.Model(&entities.Adres{}).Count(&adressen).Error)
	assert.Zero(t, adressen)
}

func TestRepository_Update_AddsAddress(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	o := &entities.Organisatie{Naam: "Zonnebloem"}
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, repo.Update(ctx, &entities.Organisatie{
		ID:    o.ID,
		Naam:  "Zonnebloem",
		Adres: &entities.Adres{Straatnaam: "Lange Lozanastraat"},
	}))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Adres)
	assert.Equal(t, "Lange Lozanastraat", got.Adres.Straatnaam)
}

func TestRepository_Delete(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	o := newOrganisatie("Welzijnsschakel")
	require.NoError(t, repo.Create(ctx, o))
	require.NoError(t, repo.Delete(ctx, o.ID))

	var contacts, adressen int64
	require.NoError(t, db.Model(&entities.Contactpersoon{}).Count(&contacts).Error)
	require.NoError(t, db.Model(&entities.Adres{}).Count(&adressen).Error)
	assert.Zero(t, contacts)
	assert.Zero(t, adressen)

	assert.ErrorIs(t, repo.Delete(ctx, o.ID), database.ErrNotFound)
}
