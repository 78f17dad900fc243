package importers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_SnapshotSummarizeMatchesLiveCounts(t *testing.T) {
	diag := NewDiagnostics("deelnemers")
	diag.Error("deelnemer_missing", RawRecord{"Deelnemer": "Jan"}, "niet gevonden")
	diag.Warn(CategoryAddressParse, nil, "adres")
	diag.Warn(CategoryPlaatsOnbekend, nil, "plaats")
	diag.Info("plaats_bestaat", nil, "bestaat")

	snap := diag.Snapshot()
	assert.Equal(t, diag.Counts(), Summarize(snap))
	assert.Equal(t, DiagnosticCounts{Errors: 1, Warnings: 2, Infos: 1}, diag.Counts())

	data, err := json.Marshal(diag)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "deelnemers", decoded.Stage)
	assert.Equal(t, diag.Counts(), Summarize(decoded))
	assert.Equal(t, "Jan", decoded.Errors[0].Record["Deelnemer"])
}

func TestDiagnostics_SnapshotIsACopy(t *testing.T) {
	diag := NewDiagnostics("test")
	diag.Warn("a", nil, "first")
	snap := diag.Snapshot()

	diag.Warn("a", nil, "second")

	assert.Len(t, snap.Warnings, 1)
	assert.Equal(t, 2, diag.Counts().Warnings)
}

func TestDiagnostics_OnRecord(t *testing.T) {
	diag := NewDiagnostics("test")
	var seen []Severity
	diag.OnRecord(func(sev Severity, e Entry) {
		seen = append(seen, sev)
	})

	diag.Error("x", nil, "e")
	diag.Info("y", nil, "i")

	assert.Equal(t, []Severity{SeverityError, SeverityInfo}, seen)
}

func TestDiagnosticCounts_Add(t *testing.T) {
	a := DiagnosticCounts{Errors: 1, Warnings: 2, Infos: 3}
	b := DiagnosticCounts{Errors: 4, Infos: 1}
	assert.Equal(t, DiagnosticCounts{Errors: 5, Warnings: 2, Infos: 4}, a.Add(b))
}

func TestSummarize_EmptySnapshot(t *testing.T) {
	assert.Equal(t, DiagnosticCounts{}, Summarize(Snapshot{}))
}
