package rapportages

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/vzwadmin/beheer/internal/database"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(database.Options{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_Query(t *testing.T) {
	repo := setupTestDB(t)

	table, err := repo.Query(context.Background(),
		"SELECT postcode, gemeente FROM plaatsen WHERE id = ?", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"postcode", "gemeente"}, table.Columns)
	require.Len(t, table.Rows, 1)
	for _, v := range table.Rows[0] {
		assert.IsType(t, "", v)
	}
}

func TestRepository_Query_Empty(t *testing.T) {
	repo := setupTestDB(t)

	table, err := repo.Query(context.Background(), "SELECT id FROM aanmeldingen")
	require.NoError(t, err)
	assert.NotNil(t, table.Rows)
	assert.Empty(t, table.Rows)
}

func TestRepository_Query_Invalid(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Query(context.Background(), "SELECT nope FROM nowhere")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"bytes", []byte("Gent"), "Gent"},
		{"time", time.Date(2022, 7, 1, 9, 30, 0, 0, time.UTC), "2022-07-01"},
		{"int", int64(4), int64(4)},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}
