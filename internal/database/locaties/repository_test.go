package locaties

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

func TestRepository_Create_DefaultsToUnknownPlace(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	l := &entities.Locatie{Naam: "De Hoeve", Adres: entities.Adres{Straatnaam: "Dorpsstraat", Huisnummer: "1"}}
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OnbekendePlaatsID, got.Adres.PlaatsID)
	require.NotNil(t, got.Adres.Plaats)
	assert.Equal(t, "Dorpsstraat", got.Adres.Straatnaam)

	err = repo.Create(ctx, &entities.Locatie{Naam: "De Hoeve"})
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRepository_Update_KeepsAddressRow(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	l := &entities.Locatie{Naam: "Zaal Een", Adres: entities.Adres{Straatnaam: "Kerkstraat"}}
	require.NoError(t, repo.Create(ctx, l))
	adresID := l.AdresID

	capaciteit := 40
	require.NoError(t, repo.Update(ctx, &entities.Locatie{
		ID:         l.ID,
		Naam:       "Zaal Twee",
		Capaciteit: &capaciteit,
		Adres:      entities.Adres{Straatnaam: "Marktplein", Huisnummer: "5"},
	}))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zaal Twee", got.Naam)
	assert.Equal(t, adresID, got.AdresID)
	assert.Equal(t, "Marktplein", got.Adres.Straatnaam)
	require.NotNil(t, got.Capaciteit)
	assert.Equal(t, 40, *got.Capaciteit)

	var adressen int64
	require.NoError(t, db.Model(&entities.Adres{}).Count(&adressen).Error)
	assert.Equal(t, int64(1), adressen)

	err = repo.Update(ctx, &entities.Locatie{ID: 999, Naam: "x"})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Delete_DetachesProjects(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	l := &entities.Locatie{Naam: "De Hoeve"}
	require.NoError(t, repo.Create(ctx, l))
	p := &entities.Project{Type: entities.ProjectTypeCursus, Projectnummer: "DK/22/001", LocatieID: &l.ID}
	require.NoError(t, db.Create(p).Error)

	require.NoError(t, repo.Delete(ctx, l.ID))

	var reloaded entities.Project
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Nil(t, reloaded.LocatieID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, repo.Delete(ctx, l.ID), database.ErrNotFound)
}
