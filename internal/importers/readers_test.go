package importers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONRecords(t *testing.T) {
	input := `[
		{"Voornaam": "Jan", "Postcode": 2000, "Actief": true, "Opmerkingen": null, " Naam ": "Peeters"},
		{"Voornaam": "An", "Tags": ["a", "b"]}
	]`

	records, err := ParseJSONRecords(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2000", records[0]["Postcode"])
	assert.Equal(t, "true", records[0]["Actief"])
	assert.Equal(t, "", records[0]["Opmerkingen"])
	assert.Equal(t, "Peeters", records[0].Get(colNaam))
	assert.Equal(t, `["a","b"]`, records[1]["Tags"])
}

func TestParseJSONRecords_NotAnArray(t *testing.T) {
	_, err := ParseJSONRecords(strings.NewReader(`{"Voornaam": "Jan"}`))
	assert.Error(t, err)
}

func TestParseCSVRecords(t *testing.T) {
	input := "\xEF\xBB\xBFVoornaam,Naam,Postcode\nJan,Peeters,2000\n,,\nAn,Maes\n"

	records, err := ParseCSVRecords(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Jan", records[0]["Voornaam"])
	assert.Equal(t, "2000", records[0]["Postcode"])
	assert.Equal(t, "Maes", records[1]["Naam"])
	assert.False(t, records[1].Has("Postcode"))
}

func TestParseCSVRecords_Empty(t *testing.T) {
	_, err := ParseCSVRecords(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plaatsen.csv"), []byte("Postcode,Deelgemeente\n2000,Antwerpen\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deelnemers.json"), []byte(`[{"Voornaam":"Jan"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deelnemers.csv"), []byte("Voornaam\nIgnored\n"), 0o644))

	t.Run("csv fallback", func(t *testing.T) {
		records, err := ReadSource(dir, "plaatsen")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Antwerpen", records[0]["Deelgemeente"])
	})

	t.Run("json preferred", func(t *testing.T) {
		records, err := ReadSource(dir, "deelnemers.json")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Jan", records[0]["Voornaam"])
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadSource(dir, "vakanties")
		assert.ErrorIs(t, err, ErrSourceMissing)
	})
}

func TestRawRecord_Get(t *testing.T) {
	rec := RawRecord{"E-mailadres": "  ", "Email": " jan@example.org "}
	assert.Equal(t, "jan@example.org", rec.Get(colEmail, colEmailAlt))
	assert.Equal(t, "", rec.Get("Ontbreekt"))
	assert.True(t, rec.Has(colEmailAlt))
}
