package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vzwadmin/beheer/internal/reports"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"plain", errors.New("boom"), exitFailure},
		{"usage", withCode(exitUsage, errors.New("bad flag")), exitUsage},
		{"wrapped", fmt.Errorf("seed: %w", withCode(exitStage, errors.New("count mismatch"))), exitStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
	assert.Nil(t, withCode(exitDB, nil))
}

// runCLI executes the root command against a temporary sqlite database.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return ExitCode(err), stdout.String(), stderr.String()
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "beheer.db"))
	t.Setenv("OUTPUT_DRIVER", "fs")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REPORTS_OUTPUT_DIR", filepath.Join(dir, "rapportages"))
	return dir
}

func writePlaatsen(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data := `[{"Postcode": "2000", "Deelgemeente": "Antwerpen", "Gemeente": "Antwerpen"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plaatsen.json"), []byte(data), 0o644))
	return dir
}

func TestSeed(t *testing.T) {
	t.Run("writes diagnostics", func(t *testing.T) {
		setupEnv(t)
		importDir := writePlaatsen(t)
		outputDir := t.TempDir()

		code, stdout, _ := runCLI(t, "seed", "--import-dir", importDir, "--output-dir", outputDir, "--stage", "plaatsen")

		require.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "plaatsen")
		assert.FileExists(t, filepath.Join(outputDir, "plaatsen-diagnostics.json"))
	})

	t.Run("readonly writes nothing", func(t *testing.T) {
		setupEnv(t)
		importDir := writePlaatsen(t)
		outputDir := t.TempDir()

		code, _, _ := runCLI(t, "seed", "--import-dir", importDir, "--output-dir", outputDir, "--stage", "plaatsen", "--readonly")

		require.Equal(t, exitOK, code)
		entries, err := os.ReadDir(outputDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unknown stage", func(t *testing.T) {
		setupEnv(t)
		code, _, _ := runCLI(t, "seed", "--stage", "boeken")
		assert.Equal(t, exitUsage, code)
	})

	t.Run("missing source fails the stage", func(t *testing.T) {
		setupEnv(t)
		code, stdout, _ := runCLI(t, "seed", "--import-dir", t.TempDir(), "--output-dir", t.TempDir(), "--stage", "organisaties")
		assert.Equal(t, exitStage, code)
		assert.Contains(t, stdout, "run ")
	})
}

func TestUsageAndConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want int
	}{
		{"unknown flag", nil, []string{"seed", "--no-such-flag"}, exitUsage},
		{"report without name", nil, []string{"report"}, exitUsage},
		{"unknown report", nil, []string{"report", "bestaat-niet"}, exitUsage},
		{"invalid year", nil, []string{"report", reports.AanmeldingenPerProvincie, "--jaar", "12"}, exitUsage},
		{"unsupported driver", map[string]string{"DATABASE_DRIVER": "mysql"}, []string{"seed"}, exitConfig},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, []string{"report", reports.AanmeldingenPerProvincie}, exitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			code, _, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestReport(t *testing.T) {
	t.Run("prints json", func(t *testing.T) {
		setupEnv(t)
		code, stdout, _ := runCLI(t, "report", reports.ActiviteitenBezetting, "--jaar", "2022")
		require.Equal(t, exitOK, code)
		assert.Contains(t, stdout, `"columns"`)
	})

	t.Run("writes a workbook into the reports dir", func(t *testing.T) {
		dir := setupEnv(t)
		code, _, _ := runCLI(t, "report", reports.AanmeldingenPerProvincie, "--out", "provincies.xlsx")
		require.Equal(t, exitOK, code)
		assert.FileExists(t, filepath.Join(dir, "rapportages", "provincies.xlsx"))
	})
}
